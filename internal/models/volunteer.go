package models

import "time"

// Volunteer is a citizen who signed up to help, keyed by phone number.
type Volunteer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:32;not null;uniqueIndex" json:"phone"`
	Skills    string    `gorm:"size:200" json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}
