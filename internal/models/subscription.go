package models

import "time"

// Subscription statuses mirrored from the external billing provider.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription records the billing state of an account. Checkout and renewal
// happen at the payment provider; this row is the local mirror.
type Subscription struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Plan            string    `gorm:"size:64;not null" json:"plan"`
	Status          string    `gorm:"size:32;not null;default:active" json:"status"`
	MinutesPerMonth int       `gorm:"not null;default:0" json:"minutes_per_month"`
	RenewsAt        time.Time `json:"renews_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
