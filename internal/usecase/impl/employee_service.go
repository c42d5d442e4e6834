package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "github.com/carlosCACB333/bonny/internal/delivery/context"
	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const employeeAttachmentFolder = "employees"

// employeeService implements the EmployeeUsecase interface. The acting
// company is always resolved from the caller account, so a forged company
// id in the payload has nothing to forge.
type employeeService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	hasher       service.PasswordHasher
	attachments  service.AttachmentStore
	logger       *slog.Logger
}

// EmployeeServiceParams holds dependencies for employeeService, injected by Fx.
type EmployeeServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	CompanyRepo  repository.CompanyRepository
	EmployeeRepo repository.EmployeeRepository
	Hasher       service.PasswordHasher
	Attachments  service.AttachmentStore
	Logger       *slog.Logger
}

// NewEmployeeService is the constructor for employeeService.
func NewEmployeeService(params EmployeeServiceParams) usecase.EmployeeUsecase {
	return &employeeService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		companyRepo:  params.CompanyRepo,
		employeeRepo: params.EmployeeRepo,
		hasher:       params.Hasher,
		attachments:  params.Attachments,
		logger:       params.Logger,
	}
}

func (srv *employeeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// actingCompany resolves the company the caller acts for.
func (srv *employeeService) actingCompany(ctx context.Context, callerID uuid.UUID) (*entity.Company, error) {
	caller, err := srv.accountRepo.FindByID(ctx, callerID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find caller account")
	}

	return resolveOwningCompany(ctx, caller, srv.companyRepo, srv.employeeRepo)
}

// CreateEmployee registers an employee under the caller's company: account,
// person and employee rows are created as one unit.
func (srv *employeeService) CreateEmployee(ctx context.Context, callerID uuid.UUID, input *usecase.CreateEmployeeInput) (*entity.Employee, error) {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if input.Password != input.Password2 {
		return nil, domainerrors.NewFieldError("password2", "Las contraseñas no coinciden")
	}
	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		return nil, err
	}

	role := entity.EmployeeRole(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.NewFieldError("role", "El rol no es válido")
	}
	gender, fieldErr := parseGender(input.Gender)
	if fieldErr != nil {
		return nil, fieldErr
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	pictureRef, err := srv.saveAttachment(ctx, input.Picture)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		Type:         entity.AccountTypeEmployee,
		DateJoined:   now,
	}
	person := &entity.Person{
		ID:        uuid.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Birth:     input.Birth,
		Gender:    gender,
		Picture:   pictureRef,
	}
	employee := &entity.Employee{
		ID:        uuid.New(),
		Account:   account,
		Person:    person,
		CompanyID: company.ID,
		Company:   company,
		Role:      role,
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.AccountRepo().Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create employee account")
		}
		if err := txRepos.PersonRepo().Create(ctx, person); err != nil {
			return errors.Wrap(err, "failed to create person")
		}
		if err := txRepos.EmployeeRepo().Create(ctx, employee); err != nil {
			return errors.Wrap(err, "failed to create employee")
		}

		return nil
	})
	if err != nil {
		// The blob is orphaned on rollback, so clean it up here.
		removeAttachment(ctx, srv.log(ctx), srv.attachments, pictureRef)
		srv.log(ctx).Error("Employee creation failed", slog.Any("companyID", company.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Employee created", slog.Any("employeeID", employee.ID), slog.Any("companyID", company.ID))

	return employee, nil
}

// GetEmployee retrieves one employee of the caller's company. Employees of
// other companies are indistinguishable from missing ones.
func (srv *employeeService) GetEmployee(ctx context.Context, callerID, employeeID uuid.UUID) (*entity.Employee, error) {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	employee, err := srv.employeeRepo.FindByID(ctx, company.ID, employeeID)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find employee")
	}

	return employee, nil
}

// ListEmployees retrieves all employees of the caller's company.
func (srv *employeeService) ListEmployees(ctx context.Context, callerID uuid.UUID) ([]*entity.Employee, error) {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	employees, err := srv.employeeRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employees")
	}

	return employees, nil
}

// SearchEmployees filters the caller's employees by name or email,
// case-insensitively.
func (srv *employeeService) SearchEmployees(ctx context.Context, callerID uuid.UUID, query string) ([]*entity.Employee, error) {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	employees, err := srv.employeeRepo.SearchByCompany(ctx, company.ID, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search employees")
	}

	return employees, nil
}

// UpdateEmployee applies a partial update across the employee aggregate.
// The company link is read-only and the account whitelist is the username.
func (srv *employeeService) UpdateEmployee(ctx context.Context, callerID, employeeID uuid.UUID, input *usecase.UpdateEmployeeInput) (*entity.Employee, error) {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	employee, err := srv.employeeRepo.FindByID(ctx, company.ID, employeeID)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find employee")
	}

	var role entity.EmployeeRole
	if input.Role != nil {
		role = entity.EmployeeRole(*input.Role)
		if !role.IsValid() {
			return nil, domainerrors.NewFieldError("role", "El rol no es válido")
		}
	}
	var gender entity.Gender
	if input.Gender != nil {
		var fieldErr error
		gender, fieldErr = parseGender(*input.Gender)
		if fieldErr != nil {
			return nil, fieldErr
		}
	}

	newPictureRef, err := srv.saveAttachment(ctx, input.Picture)
	if err != nil {
		return nil, err
	}
	oldPictureRef := employee.Person.Picture

	if input.Username != nil {
		employee.Account.Username = *input.Username
	}
	if input.Role != nil {
		employee.Role = role
	}
	applyPersonUpdate(employee.Person, personUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Birth:     input.Birth,
	})
	if input.Gender != nil {
		employee.Person.Gender = gender
	}
	if newPictureRef != "" {
		employee.Person.Picture = newPictureRef
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if input.Username != nil {
			if err := txRepos.AccountRepo().Update(ctx, employee.Account); err != nil {
				return errors.Wrap(err, "failed to update employee account")
			}
		}
		if err := txRepos.PersonRepo().Update(ctx, employee.Person); err != nil {
			return errors.Wrap(err, "failed to update person")
		}
		if input.Role != nil {
			if err := txRepos.EmployeeRepo().Update(ctx, employee); err != nil {
				return errors.Wrap(err, "failed to update employee")
			}
		}

		return nil
	})
	if err != nil {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, newPictureRef)
		srv.log(ctx).Error("Employee update failed", slog.Any("employeeID", employeeID), slog.Any("error", err))

		return nil, err
	}

	// Only after the commit is the old blob unreferenced for sure.
	if newPictureRef != "" && oldPictureRef != newPictureRef {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, oldPictureRef)
	}

	srv.log(ctx).Info("Employee updated", slog.Any("employeeID", employeeID), slog.Any("companyID", company.ID))

	return employee, nil
}

// DeleteEmployee removes the employee, its person and its account in one
// transaction, revoking any open sessions of that account along the way.
func (srv *employeeService) DeleteEmployee(ctx context.Context, callerID, employeeID uuid.UUID) error {
	company, err := srv.actingCompany(ctx, callerID)
	if err != nil {
		return err
	}

	employee, err := srv.employeeRepo.FindByID(ctx, company.ID, employeeID)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return domainerrors.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to find employee")
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.EmployeeRepo().Delete(ctx, employee.ID); err != nil {
			return errors.Wrap(err, "failed to delete employee")
		}
		if err := txRepos.PersonRepo().Delete(ctx, employee.Person.ID); err != nil {
			return errors.Wrap(err, "failed to delete person")
		}
		if err := txRepos.SessionRepo().DeleteByAccountID(ctx, employee.Account.ID); err != nil {
			return errors.Wrap(err, "failed to revoke employee sessions")
		}
		if err := txRepos.AccountRepo().Delete(ctx, employee.Account.ID); err != nil {
			return errors.Wrap(err, "failed to delete employee account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Employee delete failed", slog.Any("employeeID", employeeID), slog.Any("error", err))

		return err
	}

	removeAttachment(ctx, srv.log(ctx), srv.attachments, employee.Person.Picture)

	srv.log(ctx).Info("Employee deleted", slog.Any("employeeID", employeeID), slog.Any("companyID", company.ID))

	return nil
}

func (srv *employeeService) saveAttachment(ctx context.Context, attachment *service.Attachment) (string, error) {
	if attachment == nil {
		return "", nil
	}

	ref, err := srv.attachments.Save(ctx, employeeAttachmentFolder, attachment)
	if err != nil {
		return "", errors.Wrap(err, "failed to store attachment")
	}

	return ref, nil
}

// personUpdate is a partial update over person fields. Nil means untouched.
type personUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Birth     *time.Time
}

func applyPersonUpdate(person *entity.Person, update personUpdate) {
	if update.FirstName != nil {
		person.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		person.LastName = *update.LastName
	}
	if update.Email != nil {
		person.Email = *update.Email
	}
	if update.Phone != nil {
		person.Phone = *update.Phone
	}
	if update.Address != nil {
		person.Address = *update.Address
	}
	if update.Birth != nil {
		person.Birth = update.Birth
	}
}

func parseGender(raw string) (entity.Gender, error) {
	if raw == "" {
		return "", nil
	}

	gender := entity.Gender(raw)
	if !gender.IsValid() {
		return "", domainerrors.NewFieldError("gender", "El género no es válido")
	}

	return gender, nil
}
