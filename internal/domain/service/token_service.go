package service

import "bastion/internal/domain/entity"

// TokenService produces and recognizes opaque remember-me secrets without
// ever storing them in reversible form.
type TokenService interface {
	// Generate draws a fresh high-entropy token from a cryptographically
	// secure source. It fails rather than fall back to a weaker source; the
	// caller must abort the remember-me flow on error.
	Generate() (entity.Token, error)

	// Wrap turns a client-supplied string (e.g., a cookie value) into a
	// Token without validating it. A malformed value never matches a stored
	// hash downstream.
	Wrap(value string) entity.Token

	// Hash computes the keyed HMAC-SHA256 digest of the raw token value,
	// hex-encoded. Deterministic: same raw value and same key always yield
	// the same hash. Rotating the key invalidates every issued token.
	Hash(token entity.Token) string
}
