package impl

import (
	"context"
	"log/slog"
	"time"

	"bastion/config"
	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/domain/entity"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/domain/repository"
	"bastion/internal/domain/service"
	"bastion/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultRememberWindow = 30 * 24 * time.Hour

// rememberService implements the RememberUsecase interface.
type rememberService struct {
	rememberRepo   repository.RememberedLoginRepository
	userRepo       repository.UserRepository
	tokenService   service.TokenService
	rememberWindow time.Duration
	logger         *slog.Logger
}

// RememberServiceParams holds dependencies for rememberService, injected by Fx.
type RememberServiceParams struct {
	fx.In

	RememberRepo repository.RememberedLoginRepository
	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewRememberService is the constructor for rememberService. It receives all dependencies as interfaces.
func NewRememberService(params RememberServiceParams) usecase.RememberUsecase {
	rememberWindow := defaultRememberWindow
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.RememberWindow > 0 {
		rememberWindow = params.Config.Auth.RememberWindow
	}

	return &rememberService{
		rememberRepo:   params.RememberRepo,
		userRepo:       params.UserRepo,
		tokenService:   params.TokenService,
		rememberWindow: rememberWindow,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *rememberService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create mints a fresh remember-me token for the user and persists its keyed
// hash. The raw token exists only in the returned output; it is never stored.
func (srv *rememberService) Create(ctx context.Context, userID int64) (*usecase.RememberOutput, error) {
	token, err := srv.tokenService.Generate()
	if err != nil {
		srv.log(ctx).Error("Failed to generate remember-me token", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "failed to generate remember-me token")
	}

	expiresAt := time.Now().Add(srv.rememberWindow)

	login := &entity.RememberedLogin{
		TokenHash: srv.tokenService.Hash(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	if err := srv.rememberRepo.Create(ctx, login); err != nil {
		srv.log(ctx).Error("Failed to store remembered login", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store remembered login")
	}
	srv.log(ctx).Debug("Remembered login created", slog.Int64("userID", userID), slog.Time("expiresAt", expiresAt))

	return &usecase.RememberOutput{
		RawToken:  token.Value(),
		ExpiresAt: expiresAt,
	}, nil
}

// FindByRawToken looks up the remembered login for a raw client token. The
// record is returned even when it has already expired; callers check
// HasExpired and decide whether to revoke.
func (srv *rememberService) FindByRawToken(ctx context.Context, rawToken string) (*entity.RememberedLogin, error) {
	tokenHash := srv.tokenService.Hash(srv.tokenService.Wrap(rawToken))

	login, err := srv.rememberRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRememberedLoginNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRememberedLoginInvalid, "remembered login not found")
		}

		return nil, errors.Wrap(err, "failed to find remembered login")
	}

	return login, nil
}

// Revoke removes the remembered login identified by the raw client token.
// Revoking an unknown or already revoked token succeeds silently.
func (srv *rememberService) Revoke(ctx context.Context, rawToken string) error {
	tokenHash := srv.tokenService.Hash(srv.tokenService.Wrap(rawToken))

	if err := srv.rememberRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to revoke remembered login", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke remembered login")
	}
	srv.log(ctx).Debug("Remembered login revoked")

	return nil
}

// GetOwner loads the user the remembered login belongs to.
func (srv *rememberService) GetOwner(ctx context.Context, login *entity.RememberedLogin) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, login.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRememberedLoginInvalid, "remembered login owner missing")
		}

		return nil, errors.Wrap(err, "failed to load remembered login owner")
	}

	return user, nil
}
