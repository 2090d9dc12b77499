package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alerta-nampula/alerta/internal/config"
	"github.com/alerta-nampula/alerta/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			"no password",
			config.DatabaseConfig{User: "alerta", Host: "127.0.0.1", Port: 3306, Database: "alerta"},
			"alerta@tcp(127.0.0.1:3306)/alerta?parseTime=true&charset=utf8mb4",
		},
		{
			"with password",
			config.DatabaseConfig{User: "alerta", Password: "s3cret", Host: "db.local", Port: 3307, Database: "portal"},
			"alerta:s3cret@tcp(db.local:3307)/portal?parseTime=true&charset=utf8mb4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Errorf("DSN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerta.db")
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "mongo"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("error = %q, want to mention unsupported driver", err.Error())
	}
}

func TestAutoMigrate(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	for _, m := range AllModels() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}
}

func TestSeed_Defaults(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var settings int64
	db.Model(&models.SiteSetting{}).Count(&settings)
	if settings != int64(len(defaultSettings)) {
		t.Errorf("settings = %d, want %d", settings, len(defaultSettings))
	}

	var alerts int64
	db.Model(&models.Alert{}).Count(&alerts)
	if alerts != 3 {
		t.Errorf("alerts = %d, want 3", alerts)
	}

	var zones int64
	db.Model(&models.SafeZone{}).Count(&zones)
	if zones != 2 {
		t.Errorf("zones = %d, want 2", zones)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var alerts int64
	db.Model(&models.Alert{}).Count(&alerts)
	if alerts != 3 {
		t.Errorf("alerts after reseed = %d, want 3", alerts)
	}
}

func TestSeed_DoesNotOverwriteSettings(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	custom := models.SiteSetting{Key: "site_name", Value: "Alerta Quelimane"}
	if err := db.Create(&custom).Error; err != nil {
		t.Fatalf("create setting: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got models.SiteSetting
	db.Where("key = ?", "site_name").First(&got)
	if got.Value != "Alerta Quelimane" {
		t.Errorf("site_name = %q, want custom value preserved", got.Value)
	}
}

func TestSeed_SkipsNonEmptyAlerts(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	existing := models.Alert{Title: "Existing", Category: models.AlertUrgent, Body: "keep", Active: true}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create alert: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var alerts int64
	db.Model(&models.Alert{}).Count(&alerts)
	if alerts != 1 {
		t.Errorf("alerts = %d, want 1 (seed must not add samples to a non-empty table)", alerts)
	}
}
