package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"

	"bastion/config"
	"bastion/internal/domain/entity"
	"bastion/internal/domain/service"
)

// tokenBytes is the entropy of a raw token: 16 bytes = 128 bits = 32 hex characters.
const tokenBytes = 16

// hmacTokenService implements the TokenService interface with crypto/rand
// generation and HMAC-SHA256 hashing keyed by the process-wide secret.
type hmacTokenService struct {
	secret []byte
}

// NewHMACTokenService is the constructor for hmacTokenService. The secret
// comes from configuration so it can be rotated and isolated in tests.
func NewHMACTokenService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("token secret must be provided")
	}

	return &hmacTokenService{secret: []byte(cfg.SecretKey.Token)}, nil
}

// Generate draws 16 bytes from crypto/rand and encodes them as 32 lowercase
// hex characters. An entropy source failure is returned as an error and must
// abort the remember-me flow; there is no weaker fallback.
func (s *hmacTokenService) Generate() (entity.Token, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return entity.Token{}, errors.Wrap(err, "secure random source unavailable")
	}

	return entity.NewToken(hex.EncodeToString(buf)), nil
}

// Wrap turns a client-supplied cookie value into a Token without validation.
func (s *hmacTokenService) Wrap(value string) entity.Token {
	return entity.NewToken(value)
}

// Hash computes the keyed HMAC-SHA256 digest of the raw token value as 64
// lowercase hex characters.
func (s *hmacTokenService) Hash(token entity.Token) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token.Value()))

	return hex.EncodeToString(mac.Sum(nil))
}
