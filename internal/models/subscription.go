package models

import "time"

// Subscription is a citizen registration for alert notifications.
// Phone and email are each unique across subscriptions when present.
type Subscription struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:120" json:"name"`
	Phone      string    `gorm:"size:32;index" json:"phone"`
	Email      string    `gorm:"size:160;index" json:"email"`
	Methods    string    `gorm:"size:120" json:"methods"`
	AlertKinds string    `gorm:"size:120" json:"alert_kinds"`
	CreatedAt  time.Time `json:"created_at"`
}
