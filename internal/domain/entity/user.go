// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User represents an account holder: identity fields plus the stored
// password hash. The numeric ID is assigned by the store on insert.
type User struct {
	ID           int64
	Name         string
	Surname      string
	Phone        string
	City         string
	Email        string // Unique across all users.
	PasswordHash string // bcrypt hash; present for every persisted user.

	// Password holds a plaintext candidate only while a signup or a
	// profile update is in flight. It is never persisted or logged.
	Password string

	// Errors collects user-facing validation messages from the last
	// Validate run. Transient, never persisted.
	Errors []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
