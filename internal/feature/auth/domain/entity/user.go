// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user, generated server-side.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Username is the user's login name. It must be unique across all users
	// and is compared case-insensitively during login lookup.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Email is the user's email address. It must be unique across all users
	// and is compared case-insensitively during login lookup.
	Email string `gorm:"uniqueIndex;size:100;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
