package models

import "time"

// AdminLevel distinguishes regular staff from master administrators.
type AdminLevel string

const (
	AdminRegular AdminLevel = "admin"
	AdminMaster  AdminLevel = "master"
)

// AdminUser is a back-office account. Passwords are stored as bcrypt hashes.
type AdminUser struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"size:120;not null" json:"name"`
	Email        string     `gorm:"size:160;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"size:80;not null" json:"-"`
	Level        AdminLevel `gorm:"size:16;default:admin" json:"level"`
	CreatedAt    time.Time  `json:"created_at"`
}
