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

// companyRepository implements the repository.CompanyRepository interface.
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository is the constructor for companyRepository.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{
		db: db,
	}
}

// FindByID retrieves a company with its account preloaded.
func (repo *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var companyM model.CompanyModel

	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Where("id = ?", id).
		First(&companyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to find company by ID")
	}

	return toCompanyDomain(&companyM), nil
}

// FindByAccountID retrieves the company owned by the given account.
func (repo *companyRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Company, error) {
	var companyM model.CompanyModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&companyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to find company by account ID")
	}

	return toCompanyDomain(&companyM), nil
}

// Create persists a new company linked to an existing account.
func (repo *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	companyM := fromCompanyDomain(company)

	if err := repo.db.WithContext(ctx).Create(companyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCompanyNameTaken
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid account reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required company information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create company")
	}

	company.ID = companyM.ID
	company.CreatedAt = companyM.CreatedAt
	company.UpdatedAt = companyM.UpdatedAt

	return nil
}

// Update modifies an existing company row (not its account).
func (repo *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CompanyModel{}).
		Where("id = ?", company.ID).
		Select("name", "phone", "address", "logo").
		Updates(fromCompanyDomain(company))

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrCompanyNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update company")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}

// Delete removes a company row.
func (repo *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CompanyModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete company")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCompanyDomain converts a GORM CompanyModel to a domain Company entity.
func toCompanyDomain(data *model.CompanyModel) *entity.Company {
	if data == nil {
		return nil
	}

	return &entity.Company{
		ID:        data.ID,
		Account:   toAccountDomain(data.Account),
		Name:      data.Name,
		Phone:     data.Phone,
		Address:   data.Address,
		Logo:      data.Logo,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCompanyDomain converts a domain Company entity to a GORM CompanyModel.
func fromCompanyDomain(data *entity.Company) *model.CompanyModel {
	if data == nil {
		return nil
	}

	companyM := &model.CompanyModel{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Address:   data.Address,
		Logo:      data.Logo,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Account != nil {
		companyM.AccountID = data.Account.ID
	}

	return companyM
}
