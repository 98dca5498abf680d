package entity

import "time"

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records one membership purchase by a user.
type Payment struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"userId" db:"user_id"`
	MembershipID string        `json:"membershipId" db:"membership_id"`
	AmountCents  int64         `json:"amountCents" db:"amount_cents"`
	Status       PaymentStatus `json:"status" db:"status"`
	PaidAt       *time.Time    `json:"paidAt" db:"paid_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// PaymentRequest is the payload for recording a payment.
type PaymentRequest struct {
	UserID       string `json:"userId"`
	MembershipID string `json:"membershipId"`
	AmountCents  int64  `json:"amountCents"`
}
