package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/alerta-nampula/alerta/internal/models"
	"gorm.io/gorm"
)

// CAT is Mozambique local time (UTC+2), used for digest timestamps.
var CAT = time.FixedZone("CAT", 2*60*60)

// DailyReport holds portal activity metrics for a 24-hour period.
type DailyReport struct {
	PeriodStart      time.Time
	PeriodEnd        time.Time
	HelpRequests     int
	HelpByCategory   []CategoryCount
	PendingHelp      int
	NewVolunteers    int
	NewSubscriptions int
	NewOffers        int
	ActiveAlerts     int
}

// CategoryCount is the number of new help requests in one category.
type CategoryCount struct {
	Category models.HelpCategory
	Count    int
}

// Empty reports whether the period saw no citizen activity at all.
// The digest is suppressed for empty reports.
func (r *DailyReport) Empty() bool {
	return r.HelpRequests == 0 && r.NewVolunteers == 0 &&
		r.NewSubscriptions == 0 && r.NewOffers == 0
}

// BuildDailyReport queries the store for activity within the given range.
func BuildDailyReport(db *gorm.DB, since, until time.Time) (*DailyReport, error) {
	report := &DailyReport{
		PeriodStart: since,
		PeriodEnd:   until,
	}

	var helpCount int64
	if err := db.Model(&models.HelpRequest{}).
		Where("created_at >= ? AND created_at < ?", since, until).
		Count(&helpCount).Error; err != nil {
		return nil, fmt.Errorf("notify: daily report: %w", err)
	}
	report.HelpRequests = int(helpCount)

	// Per-category breakdown of new requests.
	var rows []struct {
		Category models.HelpCategory
		Count    int
	}
	db.Model(&models.HelpRequest{}).
		Select("category, count(*) as count").
		Where("created_at >= ? AND created_at < ?", since, until).
		Group("category").
		Order("category").
		Find(&rows)
	for _, r := range rows {
		report.HelpByCategory = append(report.HelpByCategory, CategoryCount{Category: r.Category, Count: r.Count})
	}

	var pending int64
	db.Model(&models.HelpRequest{}).
		Where("status = ?", models.HelpPending).
		Count(&pending)
	report.PendingHelp = int(pending)

	var volunteers int64
	db.Model(&models.Volunteer{}).
		Where("created_at >= ? AND created_at < ?", since, until).
		Count(&volunteers)
	report.NewVolunteers = int(volunteers)

	var subs int64
	db.Model(&models.Subscription{}).
		Where("created_at >= ? AND created_at < ?", since, until).
		Count(&subs)
	report.NewSubscriptions = int(subs)

	var offers int64
	db.Model(&models.SupportOffer{}).
		Where("created_at >= ? AND created_at < ?", since, until).
		Count(&offers)
	report.NewOffers = int(offers)

	var alerts int64
	db.Model(&models.Alert{}).
		Where("active = ?", true).
		Count(&alerts)
	report.ActiveAlerts = int(alerts)

	return report, nil
}

// BuildDailyDigest builds the report for the last 24 hours and formats it
// as an Event. Returns nil when there was no activity.
func BuildDailyDigest(db *gorm.DB) (*Event, error) {
	now := time.Now()
	report, err := BuildDailyReport(db, now.Add(-24*time.Hour), now)
	if err != nil {
		return nil, err
	}
	if report.Empty() {
		return nil, nil
	}
	ev := FormatDaily(report)
	return &ev, nil
}

// FormatDaily formats a daily report as an Event.
func FormatDaily(report *DailyReport) Event {
	var lines []string
	lines = append(lines, fmt.Sprintf("Periodo: %s - %s",
		report.PeriodStart.In(CAT).Format("02/01 15:04"),
		report.PeriodEnd.In(CAT).Format("02/01 15:04")))
	lines = append(lines, fmt.Sprintf("Pedidos de ajuda: %d novos, %d pendentes",
		report.HelpRequests, report.PendingHelp))
	for _, cc := range report.HelpByCategory {
		lines = append(lines, fmt.Sprintf("  %s: %d", cc.Category, cc.Count))
	}
	if report.NewVolunteers > 0 {
		lines = append(lines, fmt.Sprintf("Novos voluntarios: %d", report.NewVolunteers))
	}
	if report.NewSubscriptions > 0 {
		lines = append(lines, fmt.Sprintf("Novas subscricoes: %d", report.NewSubscriptions))
	}
	if report.NewOffers > 0 {
		lines = append(lines, fmt.Sprintf("Novas ofertas de apoio: %d", report.NewOffers))
	}
	lines = append(lines, fmt.Sprintf("Alertas activos: %d", report.ActiveAlerts))

	severity := SeverityInfo
	if report.PendingHelp > 0 {
		severity = SeverityWarning
	}

	return Event{
		Title:    "Resumo diario do portal",
		Body:     strings.Join(lines, "\n"),
		Severity: severity,
	}
}
