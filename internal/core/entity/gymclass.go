package entity

import "time"

// GymClass is a scheduled group class led by a trainer.
type GymClass struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Morning Spinning"`
	Description string    `json:"description" db:"description"`
	Capacity    int       `json:"capacity" db:"capacity" example:"20"`
	TrainerID   string    `json:"trainerId" db:"trainer_id"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	ImageURL    *string   `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// GymClassRequest is the create/update payload for classes.
type GymClassRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	TrainerID   string    `json:"trainerId"`
	StartsAt    time.Time `json:"startsAt"`
	ImageURL    *string   `json:"imageUrl"`
}
