package usecase

import (
	"context"
	"time"

	"bastion/internal/domain/entity"
)

// RememberOutput returns the raw remember-me token handed to the client.
// Only the keyed hash of the token is ever persisted.
type RememberOutput struct {
	RawToken  string
	ExpiresAt time.Time
}

// RememberUsecase defines the interface for persistent "remember me" logins.
type RememberUsecase interface {
	Create(ctx context.Context, userID int64) (*RememberOutput, error)
	FindByRawToken(ctx context.Context, rawToken string) (*entity.RememberedLogin, error)
	Revoke(ctx context.Context, rawToken string) error
	GetOwner(ctx context.Context, login *entity.RememberedLogin) (*entity.User, error)
}
