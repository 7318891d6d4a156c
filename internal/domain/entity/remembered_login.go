package entity

import "time"

// Token is an opaque remember-me secret. The raw value is held only by the
// client; the server persists nothing but its keyed hash.
type Token struct {
	value string
}

// NewToken wraps a raw token value, typically one presented in a cookie.
// No validation beyond shape is applied; a malformed value simply never
// matches a stored hash.
func NewToken(value string) Token {
	return Token{value: value}
}

// Value returns the raw token value for client-side storage.
func (t Token) Value() string {
	return t.value
}

// RememberedLogin is a server-side record binding a token's hash to a user
// and an absolute expiry time. A user may hold several records at once, one
// per remembered device.
type RememberedLogin struct {
	TokenHash string // Unique key; HMAC-SHA256 of the raw token, hex-encoded.
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// HasExpired reports whether the record's expiry time lies strictly before
// the current wall-clock time. Expiry is evaluated lazily at read time; no
// stored flag or background sweep exists.
func (rl *RememberedLogin) HasExpired() bool {
	return rl.ExpiresAt.Before(time.Now())
}
