package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account that can authenticate and issue queries.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a user with a fresh id. The password must already be
// hashed by the caller.
func NewUser(email, name, passwordHash string, role Role) *User {
	if !role.Valid() {
		role = RoleUser
	}
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// Principal is the authenticated actor attached to a request. Only the
// id and role are carried; everything else stays in the user store.
type Principal struct {
	ID   string
	Role Role
}

// Principal returns the user's request principal.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}
