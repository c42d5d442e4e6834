package postgres

import (
	"context"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// FindByHash retrieves a session token by its hash.
func (repo *sessionRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.SessionToken, error) {
	var tokenM model.SessionTokenModel

	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find session token")
	}

	return toSessionTokenDomain(&tokenM), nil
}

// Create persists a new session token.
func (repo *sessionRepository) Create(ctx context.Context, token *entity.SessionToken) error {
	tokenM := fromSessionTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid account reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// DeleteByHash revokes a single session token.
func (repo *sessionRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.SessionTokenModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete session token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTokenNotFound
	}

	return nil
}

// DeleteByAccountID revokes every session token of an account.
func (repo *sessionRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.SessionTokenModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete session tokens by account")
	}

	return nil
}

// DeleteExpired removes tokens whose expiry has passed, returning the count.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&model.SessionTokenModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired session tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toSessionTokenDomain converts a GORM SessionTokenModel to a domain SessionToken entity.
func toSessionTokenDomain(data *model.SessionTokenModel) *entity.SessionToken {
	if data == nil {
		return nil
	}

	return &entity.SessionToken{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromSessionTokenDomain converts a domain SessionToken entity to a GORM SessionTokenModel.
func fromSessionTokenDomain(data *entity.SessionToken) *model.SessionTokenModel {
	if data == nil {
		return nil
	}

	return &model.SessionTokenModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
