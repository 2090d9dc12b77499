package models

import "time"

// HelpCategory identifies what kind of assistance a caller asked for.
type HelpCategory string

const (
	HelpRescue    HelpCategory = "rescue"
	HelpWater     HelpCategory = "water"
	HelpFood      HelpCategory = "food"
	HelpMedicine  HelpCategory = "medicine"
	HelpAmbulance HelpCategory = "ambulance"
)

// HelpStatus tracks back-office handling of a request. The USSD flow only
// ever creates requests as pending; status changes belong to the admin API.
type HelpStatus string

const (
	HelpPending   HelpStatus = "pending"
	HelpAttending HelpStatus = "attending"
	HelpResolved  HelpStatus = "resolved"
)

// HelpRequest is a citizen request for assistance captured over USSD.
// Immutable after creation except for Status.
type HelpRequest struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone       string       `gorm:"size:32;not null;index" json:"phone"`
	Category    HelpCategory `gorm:"size:16;not null;index" json:"category"`
	Description string       `gorm:"type:text" json:"description"`
	Status      HelpStatus   `gorm:"size:16;default:pending;index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}
