package models

import "time"

// OfferStatus tracks back-office triage of a support offer.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferConfirmed OfferStatus = "confirmed"
	OfferRefused   OfferStatus = "refused"
)

// SupportOffer is a citizen offer of goods or services submitted through
// the public portal.
type SupportOffer struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind          string      `gorm:"size:60" json:"kind"`
	Quantity      string      `gorm:"size:60" json:"quantity"`
	DeliveryPlace string      `gorm:"size:160" json:"delivery_place"`
	Contact       string      `gorm:"size:120" json:"contact"`
	Status        OfferStatus `gorm:"size:16;default:pending;index" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
