// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bastion/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for user records.
// All statements are single, parameterized operations; the storage layer is
// responsible for their atomicity.
type UserRepository interface {
	// Create inserts a new user row and assigns the store-generated ID back
	// onto the entity.
	Create(ctx context.Context, user *entity.User) error

	// Update rewrites the identity fields of an existing user. The password
	// hash column is only touched when includePassword is true.
	Update(ctx context.Context, user *entity.User, includePassword bool) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// EmailExists reports whether some user other than ignoreID already holds
	// the given email. Pass ignoreID = 0 for signup, where no user should be
	// excluded from the check.
	EmailExists(ctx context.Context, email string, ignoreID int64) (bool, error)
}
