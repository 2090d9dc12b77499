package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- displaced families ---

// Families returns all displaced family records, newest first.
func (s *Store) Families() ([]models.DisplacedFamily, error) {
	var fams []models.DisplacedFamily
	if err := s.db.Order("created_at DESC").Find(&fams).Error; err != nil {
		return nil, fmt.Errorf("store: list families: %w", err)
	}
	return fams, nil
}

// CreateFamily records a displaced family group.
func (s *Store) CreateFamily(f *models.DisplacedFamily) error {
	if strings.TrimSpace(f.Neighborhood) == "" {
		return fmt.Errorf("store: family neighborhood is required")
	}
	if f.People <= 0 {
		return fmt.Errorf("store: family people count must be positive")
	}
	if err := s.db.Create(f).Error; err != nil {
		return fmt.Errorf("store: create family: %w", err)
	}
	return nil
}

// UpdateFamily overwrites an existing family record.
func (s *Store) UpdateFamily(id uint, f *models.DisplacedFamily) error {
	res := s.db.Model(&models.DisplacedFamily{}).Where("id = ?", id).
		Updates(map[string]any{
			"neighborhood": f.Neighborhood,
			"people":       f.People,
			"situation":    f.Situation,
			"shelter":      f.Shelter,
			"needs":        f.Needs,
		})
	if res.Error != nil {
		return fmt.Errorf("store: update family %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFamily removes a family record.
func (s *Store) DeleteFamily(id uint) error {
	res := s.db.Delete(&models.DisplacedFamily{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete family %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- support offers ---

// SupportOffers returns all offers, newest first.
func (s *Store) SupportOffers() ([]models.SupportOffer, error) {
	var offers []models.SupportOffer
	if err := s.db.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("store: list support offers: %w", err)
	}
	return offers, nil
}

// CreateSupportOffer records a citizen's offer of goods or services.
func (s *Store) CreateSupportOffer(o *models.SupportOffer) error {
	if strings.TrimSpace(o.Kind) == "" {
		return fmt.Errorf("store: offer kind is required")
	}
	if strings.TrimSpace(o.Contact) == "" {
		return fmt.Errorf("store: offer contact is required")
	}
	if o.Status == "" {
		o.Status = models.OfferPending
	}
	if err := s.db.Create(o).Error; err != nil {
		return fmt.Errorf("store: create support offer: %w", err)
	}
	return nil
}

// SetOfferStatus confirms or refuses an offer.
func (s *Store) SetOfferStatus(id uint, status models.OfferStatus) error {
	switch status {
	case models.OfferPending, models.OfferConfirmed, models.OfferRefused:
	default:
		return fmt.Errorf("store: unknown offer status %q", status)
	}
	res := s.db.Model(&models.SupportOffer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("store: update offer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOffer removes an offer permanently.
func (s *Store) DeleteOffer(id uint) error {
	res := s.db.Delete(&models.SupportOffer{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete offer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- subscriptions ---

// CreateSubscription registers a citizen for alert notifications. A phone
// or email that already appears on another subscription is rejected with
// ErrDuplicateSubscription.
func (s *Store) CreateSubscription(sub *models.Subscription) error {
	if strings.TrimSpace(sub.Phone) == "" && strings.TrimSpace(sub.Email) == "" {
		return fmt.Errorf("store: subscription needs a phone or an email")
	}

	var count int64
	q := s.db.Model(&models.Subscription{})
	switch {
	case sub.Phone != "" && sub.Email != "":
		q = q.Where("phone = ? OR email = ?", sub.Phone, sub.Email)
	case sub.Phone != "":
		q = q.Where("phone = ?", sub.Phone)
	default:
		q = q.Where("email = ?", sub.Email)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("store: check subscription: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSubscription
	}

	if err := s.db.Create(sub).Error; err != nil {
		return fmt.Errorf("store: create subscription: %w", err)
	}
	return nil
}

// Subscriptions returns all subscriptions, newest first.
func (s *Store) Subscriptions() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := s.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("store: list subscriptions: %w", err)
	}
	return subs, nil
}

// --- site settings ---

// Settings returns all site settings as a key/value map.
func (s *Store) Settings() (map[string]string, error) {
	var rows []models.SiteSetting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// UpdateSettings upserts the given key/value pairs.
func (s *Store) UpdateSettings(values map[string]string) error {
	for key, value := range values {
		res := s.db.Model(&models.SiteSetting{}).Where("key = ?", key).Update("value", value)
		if res.Error != nil {
			return fmt.Errorf("store: update setting %q: %w", key, res.Error)
		}
		if res.RowsAffected == 0 {
			if err := s.db.Create(&models.SiteSetting{Key: key, Value: value}).Error; err != nil {
				return fmt.Errorf("store: create setting %q: %w", key, err)
			}
		}
	}
	return nil
}

// --- admin users ---

// AdminByEmail looks up an admin account, or (nil, nil) when none exists.
func (s *Store) AdminByEmail(email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := s.db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: admin by email: %w", err)
	}
	return &admin, nil
}

// CreateAdmin registers a back-office account with a bcrypt password hash.
func (s *Store) CreateAdmin(name, email, password string, level models.AdminLevel) (*models.AdminUser, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("store: admin email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("store: admin password must be at least 8 characters")
	}
	if level == "" {
		level = models.AdminRegular
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("store: hash password: %w", err)
	}
	admin := &models.AdminUser{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Level:        level,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("store: create admin: %w", err)
	}
	return admin, nil
}

// Authenticate checks an email/password pair against the admin table.
// Returns (nil, nil) when the credentials do not match any account.
func (s *Store) Authenticate(email, password string) (*models.AdminUser, error) {
	admin, err := s.AdminByEmail(email)
	if err != nil || admin == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return admin, nil
}

// DeleteAdmin removes an admin account. The acting admin cannot delete
// their own account.
func (s *Store) DeleteAdmin(id, actorID uint) error {
	if id == actorID {
		return ErrSelfDelete
	}
	res := s.db.Delete(&models.AdminUser{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete admin %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdminUsers returns all back-office accounts.
func (s *Store) AdminUsers() ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := s.db.Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("store: list admins: %w", err)
	}
	return admins, nil
}

// --- stats ---

// Stats summarizes the portal for the public dashboard endpoint.
type Stats struct {
	ActiveAlerts    int `json:"active_alerts"`
	ActiveZones     int `json:"active_zones"`
	Families        int `json:"families"`
	DisplacedPeople int `json:"displaced_people"`
	PendingHelp     int `json:"pending_help"`
	Volunteers      int `json:"volunteers"`
}

// BuildStats computes the public dashboard counters.
func (s *Store) BuildStats() (*Stats, error) {
	var stats Stats

	var n int64
	if err := s.db.Model(&models.Alert{}).Where("active = ?", true).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("store: stats: %w", err)
	}
	stats.ActiveAlerts = int(n)

	s.db.Model(&models.SafeZone{}).Where("active = ?", true).Count(&n)
	stats.ActiveZones = int(n)

	s.db.Model(&models.DisplacedFamily{}).Count(&n)
	stats.Families = int(n)

	var people struct{ Total int }
	s.db.Model(&models.DisplacedFamily{}).Select("COALESCE(SUM(people), 0) as total").Scan(&people)
	stats.DisplacedPeople = people.Total

	s.db.Model(&models.HelpRequest{}).Where("status = ?", models.HelpPending).Count(&n)
	stats.PendingHelp = int(n)

	s.db.Model(&models.Volunteer{}).Count(&n)
	stats.Volunteers = int(n)

	return &stats, nil
}
