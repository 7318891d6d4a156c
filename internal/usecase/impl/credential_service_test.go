package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bastion/internal/domain/entity"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/domain/repository"
	"bastion/internal/infra/auth"
	"bastion/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// credentialTestUserRepo is an in-memory UserRepository for exercising the
// credential service without a database.
type credentialTestUserRepo struct {
	users  map[int64]*entity.User
	nextID int64

	createErr           error
	lastIncludePassword bool
	updateCalled        bool
}

func newCredentialTestUserRepo() *credentialTestUserRepo {
	return &credentialTestUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *credentialTestUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}

	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *credentialTestUserRepo) Update(_ context.Context, user *entity.User, includePassword bool) error {
	r.updateCalled = true
	r.lastIncludePassword = includePassword

	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	stored.Name = user.Name
	stored.Surname = user.Surname
	stored.Phone = user.Phone
	stored.City = user.City
	stored.Email = user.Email
	if includePassword {
		stored.PasswordHash = user.PasswordHash
	}

	return nil
}

func (r *credentialTestUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *stored

	return &clone, nil
}

func (r *credentialTestUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, stored := range r.users {
		if stored.Email == email {
			clone := *stored

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *credentialTestUserRepo) EmailExists(_ context.Context, email string, ignoreID int64) (bool, error) {
	for _, stored := range r.users {
		if stored.Email == email && stored.ID != ignoreID {
			return true, nil
		}
	}

	return false, nil
}

func newTestCredentialService(repo repository.UserRepository) usecase.CredentialUsecase {
	return NewCredentialService(CredentialServiceParams{
		UserRepo: repo,
		Hasher:   auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func validSignupInput() *usecase.SignupInput {
	return &usecase.SignupInput{
		Name:     "Ada",
		Surname:  "Lovelace",
		Phone:    "555-0100",
		City:     "London",
		Email:    "ada@example.com",
		Password: "abc123",
	}
}

func TestCredentialService_Validate_CollectsAllErrors(t *testing.T) {
	service := newTestCredentialService(newCredentialTestUserRepo())

	user := &entity.User{Email: "not-an-email", Password: "abc"}

	validationErrors := service.Validate(context.Background(), user)

	assert.Contains(t, validationErrors, "Name is required")
	assert.Contains(t, validationErrors, "Surname is required")
	assert.Contains(t, validationErrors, "Phone is required")
	assert.Contains(t, validationErrors, "City is required")
	assert.Contains(t, validationErrors, "Invalid email")
	assert.Contains(t, validationErrors, "Please enter at least 6 characters for the password")
	assert.Contains(t, validationErrors, "Password needs at least one number")
	assert.Equal(t, validationErrors, user.Errors)
}

func TestCredentialService_Validate_PasswordRules(t *testing.T) {
	service := newTestCredentialService(newCredentialTestUserRepo())

	cases := []struct {
		name     string
		password string
		expected []string
	}{
		{"too short with letter and digit", "a1", []string{"Please enter at least 6 characters for the password"}},
		{"no digit", "abcdef", []string{"Password needs at least one number"}},
		{"no letter", "123456", []string{"Password needs at least one letter"}},
		{"valid", "abc123", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := &entity.User{
				Name:     "Ada",
				Surname:  "Lovelace",
				Phone:    "555-0100",
				City:     "London",
				Email:    "ada@example.com",
				Password: tc.password,
			}

			validationErrors := service.Validate(context.Background(), user)

			assert.ElementsMatch(t, tc.expected, validationErrors)
		})
	}
}

func TestCredentialService_Validate_SkipsPasswordRulesWhenEmpty(t *testing.T) {
	service := newTestCredentialService(newCredentialTestUserRepo())

	user := &entity.User{
		Name:    "Ada",
		Surname: "Lovelace",
		Phone:   "555-0100",
		City:    "London",
		Email:   "ada@example.com",
	}

	validationErrors := service.Validate(context.Background(), user)

	assert.Empty(t, validationErrors)
}

func TestCredentialService_Validate_EmailTaken(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	_, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)

	user := &entity.User{
		Name:    "Grace",
		Surname: "Hopper",
		Phone:   "555-0101",
		City:    "Arlington",
		Email:   "ada@example.com",
	}

	validationErrors := service.Validate(ctx, user)

	assert.Contains(t, validationErrors, "email already taken")
}

func TestCredentialService_Validate_OwnEmailNotTaken(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	output, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)

	// Keeping the current email on update must not read as a collision.
	existing := output.User
	user := &entity.User{
		ID:      existing.ID,
		Name:    existing.Name,
		Surname: existing.Surname,
		Phone:   existing.Phone,
		City:    existing.City,
		Email:   existing.Email,
	}

	validationErrors := service.Validate(ctx, user)

	assert.Empty(t, validationErrors)
}

func TestCredentialService_Save_Success(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)

	output, err := service.Save(context.Background(), validSignupInput())

	require.NoError(t, err)
	assert.NotZero(t, output.User.ID)
	assert.Empty(t, output.User.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, output.User.PasswordHash)
	assert.NotEqual(t, "abc123", output.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(output.User.PasswordHash), []byte("abc123")))
}

func TestCredentialService_Save_ValidationFailure(t *testing.T) {
	service := newTestCredentialService(newCredentialTestUserRepo())

	input := validSignupInput()
	input.Name = ""
	input.Password = "short"

	output, err := service.Save(context.Background(), input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	require.NotNil(t, output)
	assert.Contains(t, output.User.Errors, "Name is required")
	assert.Contains(t, output.User.Errors, "Please enter at least 6 characters for the password")
}

func TestCredentialService_Update_WithoutPasswordKeepsHash(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	output, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)
	originalHash := repo.users[output.User.ID].PasswordHash

	_, err = service.Update(ctx, &usecase.UpdateProfileInput{
		ID:      output.User.ID,
		Name:    "Ada",
		Surname: "King",
		Phone:   "555-0100",
		City:    "London",
		Email:   "ada@example.com",
	})

	require.NoError(t, err)
	assert.True(t, repo.updateCalled)
	assert.False(t, repo.lastIncludePassword)
	assert.Equal(t, originalHash, repo.users[output.User.ID].PasswordHash)
	assert.Equal(t, "King", repo.users[output.User.ID].Surname)
}

func TestCredentialService_Update_WithPasswordRewritesHash(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	output, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)
	originalHash := repo.users[output.User.ID].PasswordHash

	_, err = service.Update(ctx, &usecase.UpdateProfileInput{
		ID:       output.User.ID,
		Name:     "Ada",
		Surname:  "Lovelace",
		Phone:    "555-0100",
		City:     "London",
		Email:    "ada@example.com",
		Password: "xyz789",
	})

	require.NoError(t, err)
	assert.True(t, repo.lastIncludePassword)
	newHash := repo.users[output.User.ID].PasswordHash
	assert.NotEqual(t, originalHash, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("xyz789")))
}

func TestCredentialService_Update_UnknownUser(t *testing.T) {
	service := newTestCredentialService(newCredentialTestUserRepo())

	_, err := service.Update(context.Background(), &usecase.UpdateProfileInput{ID: 999, Email: "x@example.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestCredentialService_Authenticate_Success(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	saved, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)

	output, err := service.Authenticate(ctx, &usecase.AuthenticateInput{
		Email:    "ada@example.com",
		Password: "abc123",
	})

	require.NoError(t, err)
	assert.Equal(t, saved.User.ID, output.User.ID)
}

func TestCredentialService_Authenticate_FailureIsUniform(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	_, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)

	_, unknownErr := service.Authenticate(ctx, &usecase.AuthenticateInput{
		Email:    "nobody@example.com",
		Password: "abc123",
	})
	_, wrongErr := service.Authenticate(ctx, &usecase.AuthenticateInput{
		Email:    "ada@example.com",
		Password: "wrong99",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(wrongErr, domainerrors.ErrInvalidCredentials))
}

func TestCredentialService_EmailExists(t *testing.T) {
	repo := newCredentialTestUserRepo()
	service := newTestCredentialService(repo)
	ctx := context.Background()

	saved, err := service.Save(ctx, validSignupInput())
	require.NoError(t, err)

	taken, err := service.EmailExists(ctx, "ada@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = service.EmailExists(ctx, "ada@example.com", saved.User.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = service.EmailExists(ctx, "free@example.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}
