// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying adaptive algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// random per call and embedded in the output.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash using the
	// algorithm's own constant-time verification routine.
	Check(password, hash string) bool
}
