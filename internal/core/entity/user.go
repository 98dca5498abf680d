package entity

import "time"

// AuthMode describes how a user authenticated. It gates which profile
// fields may legally be null and which update paths are permitted.
type AuthMode string

const (
	// AuthForm is local email/password registration.
	AuthForm AuthMode = "form"
	// AuthGoogleIncomplete is a Google sign-in whose profile has not been
	// completed yet (password, phone, country and address may be null).
	AuthGoogleIncomplete AuthMode = "googleIncomplete"
	// AuthGoogle is a completed Google account.
	AuthGoogle AuthMode = "google"
)

// User is a gym member account.
type User struct {
	ID        string    `json:"id" db:"id" example:"8f14e45f-ea0a-4cde-8bfa-1e1cb0d47b22"`
	Name      string    `json:"name" db:"name" example:"Jane Doe"`
	Email     string    `json:"email" db:"email" example:"jane@example.com"`
	Password  *string   `json:"-" db:"password"` // bcrypt hash, never serialized
	Auth      AuthMode  `json:"auth" db:"auth" example:"form"`
	Banned    bool      `json:"banned" db:"banned"`
	BanReason *string   `json:"banReason,omitempty" db:"ban_reason"`
	Phone     *string   `json:"phone" db:"phone"`
	Country   *string   `json:"country" db:"country"`
	Address   *string   `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Payments  []Payment `json:"payments,omitempty" db:"-"`
}

// WithoutPassword returns a copy safe to hand to callers: the stored hash is
// removed from the structure itself, not just hidden by the JSON tag.
func (u User) WithoutPassword() User {
	u.Password = nil
	return u
}

// UpdateUserRequest is the profile patch accepted by the update endpoint.
// Nil fields are left untouched on the stored record.
type UpdateUserRequest struct {
	Name     *string `json:"name" example:"Jane Doe"`
	Password *string `json:"password" example:"newpassword123"`
	Phone    *string `json:"phone" example:"555-1234"`
	Country  *string `json:"country" example:"Argentina"`
	Address  *string `json:"address" example:"Av. Siempreviva 742"`
}

// RegisterUserRequest is the form-registration payload.
type RegisterUserRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"securepassword123"`
}
