package postgres

import (
	"context"

	"bastion/internal/domain/entity"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/domain/repository"
	"bastion/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// rememberedLoginRepository implements repository.RememberedLoginRepository using GORM.
type rememberedLoginRepository struct {
	db *gorm.DB
}

// NewRememberedLoginRepository is the constructor for rememberedLoginRepository.
func NewRememberedLoginRepository(db *gorm.DB) repository.RememberedLoginRepository {
	return &rememberedLoginRepository{db: db}
}

// Create inserts a remembered login row keyed by its token hash.
func (repo *rememberedLoginRepository) Create(ctx context.Context, login *entity.RememberedLogin) error {
	loginM := fromRememberedLoginDomain(login)

	if err := repo.db.WithContext(ctx).Create(loginM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("remembered login owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create remembered login")
	}

	login.CreatedAt = loginM.CreatedAt

	return nil
}

// FindByTokenHash retrieves a remembered login record by its hashed token.
// Expiry is not evaluated here; callers decide what a stale record means.
func (repo *rememberedLoginRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RememberedLogin, error) {
	var loginM model.RememberedLoginModel

	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&loginM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRememberedLoginNotFound
		}

		return nil, errors.Wrap(err, "failed to find remembered login by token hash")
	}

	return toRememberedLoginDomain(&loginM), nil
}

// DeleteByTokenHash removes the remembered login with the given token hash.
// Deleting an absent record is a no-op, which keeps revocation idempotent.
func (repo *rememberedLoginRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RememberedLoginModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete remembered login")
	}

	return nil
}

// DeleteByUserID removes every remembered login belonging to the given user.
func (repo *rememberedLoginRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RememberedLoginModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete remembered logins for user")
	}

	return nil
}

// --- Mapper Functions ---

func toRememberedLoginDomain(data *model.RememberedLoginModel) *entity.RememberedLogin {
	if data == nil {
		return nil
	}

	return &entity.RememberedLogin{
		TokenHash: data.TokenHash,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromRememberedLoginDomain(data *entity.RememberedLogin) *model.RememberedLoginModel {
	if data == nil {
		return nil
	}

	return &model.RememberedLoginModel{
		TokenHash: data.TokenHash,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
