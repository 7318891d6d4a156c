// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bastion/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new user account.
type SignupInput struct {
	Name     string
	Surname  string
	Phone    string
	City     string
	Email    string
	Password string
}

// UpdateProfileInput defines the data for updating an existing account.
// An empty Password means the stored password hash is left untouched.
type UpdateProfileInput struct {
	ID       int64
	Name     string
	Surname  string
	Phone    string
	City     string
	Email    string
	Password string
}

// AuthenticateInput defines the data required for a password login.
type AuthenticateInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// UserOutput returns the affected user's information.
type UserOutput struct {
	User *entity.User
}

// CredentialUsecase defines the interface for account credential operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
//
// Save and Update run the full validation pass first. When validation fails
// they return ErrValidationFailed together with a non-nil output whose User
// carries the collected validation messages in its Errors field.
type CredentialUsecase interface {
	Validate(ctx context.Context, user *entity.User) []string
	Save(ctx context.Context, input *SignupInput) (*UserOutput, error)
	Update(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error)
	Authenticate(ctx context.Context, input *AuthenticateInput) (*UserOutput, error)
	EmailExists(ctx context.Context, email string, ignoreID int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}
