package db

import (
	"fmt"

	"github.com/alerta-nampula/alerta/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Alert{},
		&models.SafeZone{},
		&models.HelpRequest{},
		&models.Volunteer{},
		&models.DisplacedFamily{},
		&models.SupportOffer{},
		&models.Subscription{},
		&models.SiteSetting{},
		&models.AdminUser{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// defaultSettings are the site settings written on first seed. Existing
// values are never overwritten.
var defaultSettings = map[string]string{
	"site_name":     "Alerta Nampula",
	"site_subtitle": "Sistema de Proteccao Comunitaria",
	"site_email":    "alerta@nampula.gov.mz",
	"site_phone":    "+258 87 441 3363",
	"site_address":  "Carrupeia, Nampula",
	"site_whatsapp": "",
	"site_facebook": "",
	"site_twitter":  "",
}

// Seed writes default site settings and, when the respective tables are
// empty, a starter set of alerts, safe zones and family records.
func Seed(db *gorm.DB) error {
	if err := seedSettings(db); err != nil {
		return err
	}
	if err := seedAlerts(db); err != nil {
		return err
	}
	if err := seedZones(db); err != nil {
		return err
	}
	return seedFamilies(db)
}

func seedSettings(db *gorm.DB) error {
	for key, value := range defaultSettings {
		setting := models.SiteSetting{Key: key, Value: value}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&setting)
		if result.Error != nil {
			return fmt.Errorf("db: seed setting %q: %w", key, result.Error)
		}
	}
	return nil
}

func seedAlerts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Alert{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: count alerts: %w", err)
	}
	if count > 0 {
		return nil
	}
	alerts := []models.Alert{
		{Title: "Alerta Meteorologico", Category: models.AlertUrgent, Body: "Previsao de chuvas fortes nos proximos 3 dias.", Active: true},
		{Title: "Seguranca Publica", Category: models.AlertAttention, Body: "Atencao redobrada em locais publicos.", Active: true},
		{Title: "Saude Publica", Category: models.AlertInformational, Body: "Campanha de vacinacao contra a colera.", Active: true},
	}
	if err := db.Create(&alerts).Error; err != nil {
		return fmt.Errorf("db: seed alerts: %w", err)
	}
	return nil
}

func seedZones(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SafeZone{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: count zones: %w", err)
	}
	if count > 0 {
		return nil
	}
	zones := []models.SafeZone{
		{Name: "Escola Primaria de Napipine", Capacity: 200, Resources: "Agua potavel, alimentacao garantida", Active: true},
		{Name: "Centro Comunitario Municipal", Capacity: 150, Resources: "Assistencia medica basica, espaco para dormir", Active: true},
	}
	if err := db.Create(&zones).Error; err != nil {
		return fmt.Errorf("db: seed zones: %w", err)
	}
	return nil
}

func seedFamilies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DisplacedFamily{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: count families: %w", err)
	}
	if count > 0 {
		return nil
	}
	families := []models.DisplacedFamily{
		{Neighborhood: "Bairro Muahivire", People: 15, Situation: "Inundacoes", Shelter: "Escola Primaria", Needs: "Agua, alimentos, cobertores"},
		{Neighborhood: "Bairro Napipine", People: 27, Situation: "Ciclone", Shelter: "Centro Comunitario", Needs: "Kits de higiene, medicamentos"},
	}
	if err := db.Create(&families).Error; err != nil {
		return fmt.Errorf("db: seed families: %w", err)
	}
	return nil
}
