package models

import "time"

// DisplacedFamily records a family group displaced by a disaster and
// where it is sheltered. Managed entirely by the back office.
type DisplacedFamily struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Neighborhood string    `gorm:"size:120;not null" json:"neighborhood"`
	People       int       `gorm:"not null" json:"people"`
	Situation    string    `gorm:"size:120;not null" json:"situation"`
	Shelter      string    `gorm:"size:160;not null" json:"shelter"`
	Needs        string    `gorm:"type:text" json:"needs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
