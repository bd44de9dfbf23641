// Package models defines the persistent domain records of DayKeeper.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record, stored under user_<email> and mirrored into the
// session and last-authenticated singleton slots.
type User struct {
	// ID is unique and opaque. UUIDv7 keeps ids ordered by creation time.
	ID string `json:"id"`

	// Email is the account key. Stored case-sensitive; one record per email.
	Email string `json:"email"`

	FullName string `json:"fullName"`

	CreatedAt time.Time `json:"createdAt"`
}

// Credential pairs an email with its stored password representation.
// It exists if and only if the User with the same email exists.
// The Password field holds whatever the configured PasswordHasher produced.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewID returns a fresh creation-time-ordered identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
