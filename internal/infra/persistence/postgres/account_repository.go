package postgres

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by ID")
	}

	return toAccountDomain(&accountM), nil
}

// FindByUsername retrieves a single account by its unique username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.DateJoined = accountM.DateJoined

	return nil
}

// Update modifies an existing account.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select("username", "password", "is_active", "is_superuser", "last_login").
		Updates(accountM)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUsernameTaken
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account row.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete account")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsSuperuser:  data.IsSuperuser,
		Type:         entity.AccountType(data.Type),
		LastLogin:    data.LastLogin,
		DateJoined:   data.DateJoined,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsSuperuser:  data.IsSuperuser,
		Type:         data.Type.String(),
		LastLogin:    data.LastLogin,
		DateJoined:   data.DateJoined,
	}
}
