package entity

import (
	"time"
)

// Role values gate route visibility; the dashboard only distinguishes
// admins from regular users.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is the aggregate root for the user domain
// Passwords are stored as bcrypt hashes in PasswordHash and must never
// leave the server; use Public() for anything client-facing.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the stripped form of a User: safe to serialize into
// responses, the session cookie, and the client-side store.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Public returns the user without the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}

// Session is the per-request view of the authenticated principal,
// reconstructed from the session cookie on every resolution.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
