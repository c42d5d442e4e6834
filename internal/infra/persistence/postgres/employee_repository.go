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

// employeeRepository implements the repository.EmployeeRepository interface.
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository is the constructor for employeeRepository.
func NewEmployeeRepository(db *gorm.DB) repository.EmployeeRepository {
	return &employeeRepository{
		db: db,
	}
}

// FindByID retrieves an employee of the given company. Filtering by company
// in the query itself makes foreign tenants indistinguishable from missing rows.
func (repo *employeeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Employee, error) {
	var employeeM model.EmployeeModel

	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Preload("Person").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&employeeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmployeeNotFound
		}

		return nil, errors.Wrap(err, "failed to find employee by ID")
	}

	return toEmployeeDomain(&employeeM), nil
}

// FindByAccountID retrieves the employee owned by the given account.
func (repo *employeeRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Employee, error) {
	var employeeM model.EmployeeModel

	if err := repo.db.WithContext(ctx).
		Preload("Person").
		Preload("Company").
		Where("account_id = ?", accountID).
		First(&employeeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmployeeNotFound
		}

		return nil, errors.Wrap(err, "failed to find employee by account ID")
	}

	return toEmployeeDomain(&employeeM), nil
}

// ListByCompany retrieves all employees of a company.
func (repo *employeeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Employee, error) {
	var employeeModels []*model.EmployeeModel

	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Preload("Person").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&employeeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list employees by company")
	}

	employees := make([]*entity.Employee, 0, len(employeeModels))
	for _, employeeM := range employeeModels {
		employees = append(employees, toEmployeeDomain(employeeM))
	}

	return employees, nil
}

// SearchByCompany retrieves the employees of a company whose person first
// name, last name or email contains the query, case-insensitively.
func (repo *employeeRepository) SearchByCompany(ctx context.Context, companyID uuid.UUID, query string) ([]*entity.Employee, error) {
	var employeeModels []*model.EmployeeModel

	pattern := "%" + query + "%"
	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Preload("Person").
		Joins("JOIN persons ON persons.id = employees.person_id").
		Where("employees.company_id = ?", companyID).
		Where(
			"persons.first_name ILIKE ? OR persons.last_name ILIKE ? OR persons.email ILIKE ?",
			pattern, pattern, pattern,
		).
		Order("employees.created_at DESC").
		Find(&employeeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search employees by company")
	}

	employees := make([]*entity.Employee, 0, len(employeeModels))
	for _, employeeM := range employeeModels {
		employees = append(employees, toEmployeeDomain(employeeM))
	}

	return employees, nil
}

// Create persists a new employee linked to existing account and person rows.
func (repo *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	employeeM := fromEmployeeDomain(employee)

	if err := repo.db.WithContext(ctx).Create(employeeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid account, person or company reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required employee information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create employee")
	}

	employee.ID = employeeM.ID
	employee.CreatedAt = employeeM.CreatedAt
	employee.UpdatedAt = employeeM.UpdatedAt

	return nil
}

// Update modifies an existing employee row. The company link is never touched.
func (repo *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EmployeeModel{}).
		Where("id = ?", employee.ID).
		Select("role").
		Updates(fromEmployeeDomain(employee))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update employee")
	}

	if result.RowsAffected == 0 {
		return repository.ErrEmployeeNotFound
	}

	return nil
}

// Delete removes an employee row.
func (repo *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.EmployeeModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete employee")
	}

	if result.RowsAffected == 0 {
		return repository.ErrEmployeeNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toEmployeeDomain converts a GORM EmployeeModel to a domain Employee entity.
func toEmployeeDomain(data *model.EmployeeModel) *entity.Employee {
	if data == nil {
		return nil
	}

	return &entity.Employee{
		ID:        data.ID,
		Account:   toAccountDomain(data.Account),
		Person:    toPersonDomain(data.Person),
		CompanyID: data.CompanyID,
		Company:   toCompanyDomain(data.Company),
		Role:      entity.EmployeeRole(data.Role),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromEmployeeDomain converts a domain Employee entity to a GORM EmployeeModel.
func fromEmployeeDomain(data *entity.Employee) *model.EmployeeModel {
	if data == nil {
		return nil
	}

	employeeM := &model.EmployeeModel{
		ID:        data.ID,
		CompanyID: data.CompanyID,
		Role:      data.Role.String(),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Account != nil {
		employeeM.AccountID = data.Account.ID
	}
	if data.Person != nil {
		employeeM.PersonID = data.Person.ID
	}

	return employeeM
}
