package models

import "time"

// SafeZone is a shelter location citizens can be directed to.
type SafeZone struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:160;not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Resources string    `gorm:"type:text" json:"resources"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
