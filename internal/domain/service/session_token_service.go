package service

import "time"

// SessionTokenService issues and validates the short-lived session tokens the
// authenticator layer hands out after a successful login. Distinct from
// TokenService: session tokens are self-contained and never persisted, while
// remember-me tokens are opaque and recognized only by their stored hash.
type SessionTokenService interface {
	// GenerateAccessToken creates a signed session token for the user.
	GenerateAccessToken(userID int64) (string, error)

	// ValidateAccessToken verifies a session token and returns the user ID
	// it was issued for.
	ValidateAccessToken(tokenString string) (int64, error)

	// AccessTokenTTL returns the configured session token lifetime.
	AccessTokenTTL() time.Duration
}
