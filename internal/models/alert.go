package models

import "time"

// AlertCategory classifies an alert by severity.
type AlertCategory string

const (
	AlertUrgent        AlertCategory = "urgent"
	AlertAttention     AlertCategory = "attention"
	AlertInformational AlertCategory = "informational"
)

// Rank returns the sort position for a category: urgent first, then
// attention, then informational. Unknown categories sort last.
func (c AlertCategory) Rank() int {
	switch c {
	case AlertUrgent:
		return 0
	case AlertAttention:
		return 1
	case AlertInformational:
		return 2
	}
	return 3
}

// Valid reports whether c is one of the known categories.
func (c AlertCategory) Valid() bool {
	return c.Rank() < 3
}

// Alert is a civil-protection notice published by the back office.
type Alert struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string        `gorm:"size:160;not null" json:"title"`
	Category  AlertCategory `gorm:"size:16;not null;index" json:"category"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	Active    bool          `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
