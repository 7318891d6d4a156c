package repository

import (
	"context"

	"bastion/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRememberedLoginNotFound is returned when no record matches a token hash.
var ErrRememberedLoginNotFound = errors.New("remembered login not found")

// RememberedLoginRepository defines persistence operations for remember-me
// records. Records are keyed by the token hash; uniqueness is enforced by a
// storage-level unique constraint so concurrent issuance needs no locking.
type RememberedLoginRepository interface {
	// Create persists a new remember-me record.
	Create(ctx context.Context, login *entity.RememberedLogin) error

	// FindByTokenHash retrieves a record by its token hash. Expiry is not
	// evaluated here; lazy expiry belongs to the caller.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RememberedLogin, error)

	// DeleteByTokenHash removes a record by its token hash. Deleting an
	// already-absent record is a no-op, not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every record for a user ("forget all devices").
	DeleteByUserID(ctx context.Context, userID int64) error
}
