package domain

import "time"

// Role governs which operations a caller may invoke.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the recognized values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may act on applications in review.
func (r Role) CanReview() bool {
	return r == RoleOfficer || r == RoleAdmin
}

// User represents an authenticated identity in the platform.
// Email is a unique, case-sensitive lookup key.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Language     string    `json:"language,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the trusted caller identity resolved by the access gateway.
// The engine never re-authenticates it.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
