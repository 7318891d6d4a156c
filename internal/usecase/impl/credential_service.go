// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/domain/entity"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/domain/repository"
	"bastion/internal/domain/service"
	"bastion/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Validation messages surfaced to the client. Password rules apply only when
// a plaintext password was submitted.
const (
	msgNameRequired     = "Name is required"
	msgSurnameRequired  = "Surname is required"
	msgPhoneRequired    = "Phone is required"
	msgCityRequired     = "City is required"
	msgInvalidEmail     = "Invalid email"
	msgEmailTaken       = "email already taken"
	msgPasswordTooShort = "Please enter at least 6 characters for the password"
	msgPasswordNoLetter = "Password needs at least one letter"
	msgPasswordNoDigit  = "Password needs at least one number"
)

const minPasswordLength = 6

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		validate: validator.New(),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Validate runs every check and collects all failures, so the client sees the
// complete list in one round trip. The messages are stored on the entity and
// returned. User.ID acts as the self-exclusion for the uniqueness check, so a
// user keeping their own email on update does not trip it.
func (srv *credentialService) Validate(ctx context.Context, user *entity.User) []string {
	var validationErrors []string

	if strings.TrimSpace(user.Name) == "" {
		validationErrors = append(validationErrors, msgNameRequired)
	}
	if strings.TrimSpace(user.Surname) == "" {
		validationErrors = append(validationErrors, msgSurnameRequired)
	}
	if strings.TrimSpace(user.Phone) == "" {
		validationErrors = append(validationErrors, msgPhoneRequired)
	}
	if strings.TrimSpace(user.City) == "" {
		validationErrors = append(validationErrors, msgCityRequired)
	}

	if err := srv.validate.Var(user.Email, "required,email"); err != nil {
		validationErrors = append(validationErrors, msgInvalidEmail)
	} else {
		taken, err := srv.userRepo.EmailExists(ctx, user.Email, user.ID)
		if err != nil {
			// The unique constraint on the email column is the backstop when
			// the pre-check cannot be performed.
			srv.log(ctx).Warn("Email uniqueness check failed", slog.String("email", user.Email), slog.Any("error", err))
		} else if taken {
			validationErrors = append(validationErrors, msgEmailTaken)
		}
	}

	if user.Password != "" {
		if len(user.Password) < minPasswordLength {
			validationErrors = append(validationErrors, msgPasswordTooShort)
		}
		if !hasLetter.MatchString(user.Password) {
			validationErrors = append(validationErrors, msgPasswordNoLetter)
		}
		if !hasDigit.MatchString(user.Password) {
			validationErrors = append(validationErrors, msgPasswordNoDigit)
		}
	}

	user.Errors = validationErrors

	return validationErrors
}

// Save validates and persists a new user account.
func (srv *credentialService) Save(ctx context.Context, input *usecase.SignupInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Debug("Starting user signup", slog.String("email", input.Email))

	user := &entity.User{
		Name:     input.Name,
		Surname:  input.Surname,
		Phone:    input.Phone,
		City:     input.City,
		Email:    input.Email,
		Password: input.Password,
	}

	if validationErrors := srv.Validate(ctx, user); len(validationErrors) > 0 {
		srv.log(ctx).Warn("Signup validation failed", slog.String("email", input.Email), slog.Any("validationErrors", validationErrors))

		return &usecase.UserOutput{User: user}, errors.Wrap(domainerrors.ErrValidationFailed, "signup validation failed")
	}

	hashedPassword, err := srv.hasher.Hash(user.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}
	user.PasswordHash = hashedPassword
	user.Password = ""

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("email", user.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during signup")
	}
	srv.log(ctx).Debug("User signed up successfully", slog.Int64("userID", user.ID))

	return &usecase.UserOutput{User: user}, nil
}

// Update validates and persists changes to an existing account. The stored
// password hash is rewritten only when a new plaintext password was supplied.
func (srv *credentialService) Update(ctx context.Context, input *usecase.UpdateProfileInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Debug("Starting profile update", slog.Int64("userID", input.ID))

	user, err := srv.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
		}

		return nil, errors.Wrap(err, "failed to load user for update")
	}

	user.Name = input.Name
	user.Surname = input.Surname
	user.Phone = input.Phone
	user.City = input.City
	user.Email = input.Email
	user.Password = input.Password

	if validationErrors := srv.Validate(ctx, user); len(validationErrors) > 0 {
		srv.log(ctx).Warn("Profile update validation failed", slog.Int64("userID", input.ID), slog.Any("validationErrors", validationErrors))

		return &usecase.UserOutput{User: user}, errors.Wrap(domainerrors.ErrValidationFailed, "profile update validation failed")
	}

	includePassword := user.Password != ""
	if includePassword {
		hashedPassword, err := srv.hasher.Hash(user.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during update", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during update")
		}
		user.PasswordHash = hashedPassword
	}
	user.Password = ""

	if err := srv.userRepo.Update(ctx, user, includePassword); err != nil {
		srv.log(ctx).Error("Failed to update user", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user profile")
	}
	srv.log(ctx).Debug("Profile updated successfully", slog.Int64("userID", user.ID))

	return &usecase.UserOutput{User: user}, nil
}

// Authenticate verifies an email and password pair. An unknown email and a
// wrong password produce the same error, so callers cannot tell which part
// failed.
func (srv *credentialService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Debug("Starting authentication", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Authentication failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
		}

		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Authentication failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}
	srv.log(ctx).Debug("User authenticated successfully", slog.Int64("userID", user.ID))

	return &usecase.UserOutput{User: user}, nil
}

// EmailExists reports whether the email is already held by another account.
func (srv *credentialService) EmailExists(ctx context.Context, email string, ignoreID int64) (bool, error) {
	taken, err := srv.userRepo.EmailExists(ctx, email, ignoreID)
	if err != nil {
		srv.log(ctx).Error("Failed to check email existence", slog.String("email", email), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to check email existence")
	}

	return taken, nil
}

// FindByID retrieves a user by their ID.
func (srv *credentialService) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
