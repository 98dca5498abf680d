package entity

import "time"

// Membership is a subscription plan sold by the gym.
type Membership struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" example:"Premium"`
	Description  string    `json:"description" db:"description"`
	PriceCents   int64     `json:"priceCents" db:"price_cents" example:"4999"`
	DurationDays int       `json:"durationDays" db:"duration_days" example:"30"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// MembershipRequest is the create/update payload for membership plans.
type MembershipRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	DurationDays int    `json:"durationDays"`
}
