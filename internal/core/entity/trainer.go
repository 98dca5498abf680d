package entity

import "time"

// Trainer is a member of the coaching staff.
type Trainer struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" example:"Carlos Mendez"`
	Specialty       string    `json:"specialty" db:"specialty" example:"CrossFit"`
	Bio             string    `json:"bio" db:"bio"`
	ExperienceYears int       `json:"experienceYears" db:"experience_years"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// TrainerRequest is the create/update payload for trainers.
type TrainerRequest struct {
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	Bio             string `json:"bio"`
	ExperienceYears int    `json:"experienceYears"`
}
