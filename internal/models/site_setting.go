package models

// SiteSetting is one key/value pair of portal-wide configuration
// (site name, contact details, social links).
type SiteSetting struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Key   string `gorm:"size:64;uniqueIndex;not null"`
	Value string `gorm:"size:255;not null"`
}
