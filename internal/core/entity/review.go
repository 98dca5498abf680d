package entity

import "time"

// Review is a member's rating of a trainer. One review per (user, trainer).
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	TrainerID string    `json:"trainerId" db:"trainer_id"`
	Rating    int       `json:"rating" db:"rating" example:"5"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReviewRequest is the payload for posting a review.
type ReviewRequest struct {
	UserID    string `json:"userId"`
	TrainerID string `json:"trainerId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
