package entity

import "time"

// Routine is a reusable workout plan, optionally with a demo video or image
// hosted on the media store.
type Routine struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Full Body Beginner"`
	Description string    `json:"description" db:"description"`
	Difficulty  string    `json:"difficulty" db:"difficulty" example:"beginner"`
	MediaURL    *string   `json:"mediaUrl" db:"media_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RoutineRequest is the create/update payload for routines.
type RoutineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}
