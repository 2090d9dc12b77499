// Package store implements the portal's persistence layer on top of gorm.
// It serves both the USSD interpreter (reads and citizen writes) and the
// back-office HTTP API (full CRUD). Urgent help requests are forwarded to
// the configured notifiers after they are persisted.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
	"github.com/alerta-nampula/alerta/internal/notify"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers so they can map them to user-facing
// responses.
var (
	ErrNotFound              = errors.New("store: record not found")
	ErrDuplicateSubscription = errors.New("store: phone or email already subscribed")
	ErrDuplicateVolunteer    = errors.New("store: phone already registered as volunteer")
	ErrSelfDelete            = errors.New("store: admin cannot delete own account")
)

// severityRank orders alerts urgent first, then attention, then
// informational. Works on both sqlite and mysql.
const severityRank = "CASE category " +
	"WHEN 'urgent' THEN 0 " +
	"WHEN 'attention' THEN 1 " +
	"WHEN 'informational' THEN 2 " +
	"ELSE 3 END"

// Store wraps the database and an optional notifier for urgent events.
type Store struct {
	db       *gorm.DB
	notifier notify.Notifier
}

// Opts holds parameters for creating a Store.
type Opts struct {
	DB *gorm.DB
	// Notifier receives urgent help requests after they are saved.
	// May be nil, in which case nothing is forwarded.
	Notifier notify.Notifier
}

// New creates a Store.
func New(opts Opts) (*Store, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("store: database is required")
	}
	return &Store{db: opts.DB, notifier: opts.Notifier}, nil
}

// DB exposes the underlying handle for reporting jobs.
func (s *Store) DB() *gorm.DB { return s.db }

// --- alerts ---

// ActiveAlerts returns up to limit active alerts, most severe category
// first, newest first within a category.
func (s *Store) ActiveAlerts(limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	q := s.db.Where("active = ?", true).
		Order(severityRank + ", created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("store: list active alerts: %w", err)
	}
	return alerts, nil
}

// Alerts returns all alerts, newest first, for the back office.
func (s *Store) Alerts() ([]models.Alert, error) {
	var alerts []models.Alert
	if err := s.db.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("store: list alerts: %w", err)
	}
	return alerts, nil
}

// CreateAlert validates and saves a new alert.
func (s *Store) CreateAlert(a *models.Alert) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("store: alert title is required")
	}
	if !a.Category.Valid() {
		return fmt.Errorf("store: unknown alert category %q", a.Category)
	}
	if err := s.db.Create(a).Error; err != nil {
		return fmt.Errorf("store: create alert: %w", err)
	}
	return nil
}

// UpdateAlert overwrites the editable fields of an existing alert.
func (s *Store) UpdateAlert(id uint, title string, category models.AlertCategory, body string) error {
	if !category.Valid() {
		return fmt.Errorf("store: unknown alert category %q", category)
	}
	res := s.db.Model(&models.Alert{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "category": category, "body": body})
	if res.Error != nil {
		return fmt.Errorf("store: update alert %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAlertActive toggles an alert's visibility.
func (s *Store) SetAlertActive(id uint, active bool) error {
	res := s.db.Model(&models.Alert{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("store: toggle alert %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlert removes an alert permanently.
func (s *Store) DeleteAlert(id uint) error {
	res := s.db.Delete(&models.Alert{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete alert %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- safe zones ---

// ActiveZones returns the active safe zones ordered by name.
func (s *Store) ActiveZones() ([]models.SafeZone, error) {
	var zones []models.SafeZone
	if err := s.db.Where("active = ?", true).Order("name ASC").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("store: list active zones: %w", err)
	}
	return zones, nil
}

// Zones returns all safe zones, including deactivated ones.
func (s *Store) Zones() ([]models.SafeZone, error) {
	var zones []models.SafeZone
	if err := s.db.Order("name ASC").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("store: list zones: %w", err)
	}
	return zones, nil
}

// CreateZone saves a new safe zone.
func (s *Store) CreateZone(z *models.SafeZone) error {
	if strings.TrimSpace(z.Name) == "" {
		return fmt.Errorf("store: zone name is required")
	}
	if err := s.db.Create(z).Error; err != nil {
		return fmt.Errorf("store: create zone: %w", err)
	}
	return nil
}

// UpdateZone overwrites the editable fields of an existing zone.
func (s *Store) UpdateZone(id uint, name string, capacity int, resources string) error {
	res := s.db.Model(&models.SafeZone{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "capacity": capacity, "resources": resources})
	if res.Error != nil {
		return fmt.Errorf("store: update zone %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetZoneActive toggles a zone's visibility.
func (s *Store) SetZoneActive(id uint, active bool) error {
	res := s.db.Model(&models.SafeZone{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("store: toggle zone %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteZone removes a zone permanently.
func (s *Store) DeleteZone(id uint) error {
	res := s.db.Delete(&models.SafeZone{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete zone %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- help requests ---

// urgentCategory reports whether a help category warrants immediate
// operator notification.
func urgentCategory(c models.HelpCategory) bool {
	return c == models.HelpRescue || c == models.HelpAmbulance
}

// CreateHelpRequest persists a help request and, for rescue and ambulance
// requests, forwards it to the notifier. Notification failures are logged
// but never surfaced to the caller; the request is already saved.
func (s *Store) CreateHelpRequest(req *models.HelpRequest) error {
	if req.Status == "" {
		req.Status = models.HelpPending
	}
	if err := s.db.Create(req).Error; err != nil {
		return fmt.Errorf("store: create help request: %w", err)
	}

	if s.notifier != nil && urgentCategory(req.Category) {
		ev := notify.Event{
			Title:    fmt.Sprintf("Pedido urgente #%d (%s)", req.ID, req.Category),
			Body:     fmt.Sprintf("Telefone: %s\n%s", req.Phone, req.Description),
			Severity: notify.SeverityUrgent,
		}
		if err := s.notifier.Send(context.Background(), ev); err != nil {
			log.Printf("store: notify help request %d: %v", req.ID, err)
		}
	}
	return nil
}

// HelpRequests returns help requests newest first, optionally filtered
// by status. An empty status returns everything.
func (s *Store) HelpRequests(status models.HelpStatus) ([]models.HelpRequest, error) {
	var reqs []models.HelpRequest
	q := s.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("store: list help requests: %w", err)
	}
	return reqs, nil
}

// SetHelpRequestStatus moves a request through the triage workflow.
func (s *Store) SetHelpRequestStatus(id uint, status models.HelpStatus) error {
	switch status {
	case models.HelpPending, models.HelpAttending, models.HelpResolved:
	default:
		return fmt.Errorf("store: unknown help status %q", status)
	}
	res := s.db.Model(&models.HelpRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("store: update help request %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- volunteers ---

// VolunteerByPhone returns the volunteer registered under phone, or
// (nil, nil) when none exists.
func (s *Store) VolunteerByPhone(phone string) (*models.Volunteer, error) {
	var v models.Volunteer
	err := s.db.Where("phone = ?", phone).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: volunteer by phone: %w", err)
	}
	return &v, nil
}

// CreateVolunteer registers a volunteer. Returns ErrDuplicateVolunteer
// when the phone number is already registered.
func (s *Store) CreateVolunteer(v *models.Volunteer) error {
	existing, err := s.VolunteerByPhone(v.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateVolunteer
	}
	if err := s.db.Create(v).Error; err != nil {
		return fmt.Errorf("store: create volunteer: %w", err)
	}
	return nil
}

// Volunteers returns all volunteers, newest first.
func (s *Store) Volunteers() ([]models.Volunteer, error) {
	var vols []models.Volunteer
	if err := s.db.Order("created_at DESC").Find(&vols).Error; err != nil {
		return nil, fmt.Errorf("store: list volunteers: %w", err)
	}
	return vols, nil
}
