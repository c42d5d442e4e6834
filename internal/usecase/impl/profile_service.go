package impl

import (
	"context"
	"log/slog"

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

const (
	companyAttachmentFolder = "companies"
	personAttachmentFolder  = "persons"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	attachments  service.AttachmentStore
	logger       *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	CompanyRepo  repository.CompanyRepository
	EmployeeRepo repository.EmployeeRepository
	Attachments  service.AttachmentStore
	Logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		companyRepo:  params.CompanyRepo,
		employeeRepo: params.EmployeeRepo,
		attachments:  params.Attachments,
		logger:       params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) findAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

// GetProfile resolves the role-specific profile of an account.
func (srv *profileService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	account, err := srv.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return resolveProfile(ctx, account, srv.companyRepo, srv.employeeRepo)
}

// UpdateCompanyProfile applies a partial update to the caller's own company.
// Only company accounts may call it.
func (srv *profileService) UpdateCompanyProfile(ctx context.Context, callerID uuid.UUID, input *usecase.UpdateCompanyProfileInput) (*entity.Company, error) {
	account, err := srv.findAccount(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if account.Type != entity.AccountTypeCompany {
		return nil, domainerrors.ErrForbidden
	}

	company, err := srv.companyRepo.FindByAccountID(ctx, callerID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return nil, domainerrors.ErrAccountUnprovisioned
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find company")
	}
	company.Account = account

	var newLogoRef string
	if input.Logo != nil {
		newLogoRef, err = srv.attachments.Save(ctx, companyAttachmentFolder, input.Logo)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store logo")
		}
	}
	oldLogoRef := company.Logo

	if input.Username != nil {
		account.Username = *input.Username
	}
	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if newLogoRef != "" {
		company.Logo = newLogoRef
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if input.Username != nil {
			if err := txRepos.AccountRepo().Update(ctx, account); err != nil {
				return errors.Wrap(err, "failed to update account")
			}
		}
		if err := txRepos.CompanyRepo().Update(ctx, company); err != nil {
			return errors.Wrap(err, "failed to update company")
		}

		return nil
	})
	if err != nil {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, newLogoRef)
		srv.log(ctx).Error("Company profile update failed", slog.Any("companyID", company.ID), slog.Any("error", err))

		return nil, err
	}

	if newLogoRef != "" && oldLogoRef != newLogoRef {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, oldLogoRef)
	}

	srv.log(ctx).Info("Company profile updated", slog.Any("companyID", company.ID))

	return company, nil
}

// UpdateEmployeeProfile applies a partial update to the caller's own person
// data. Role and company assignment stay with the employer.
func (srv *profileService) UpdateEmployeeProfile(ctx context.Context, callerID uuid.UUID, input *usecase.UpdateEmployeeProfileInput) (*entity.Employee, error) {
	account, err := srv.findAccount(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if account.Type != entity.AccountTypeEmployee {
		return nil, domainerrors.ErrForbidden
	}

	employee, err := srv.employeeRepo.FindByAccountID(ctx, callerID)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return nil, domainerrors.ErrAccountUnprovisioned
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find employee")
	}
	employee.Account = account

	var gender entity.Gender
	if input.Gender != nil {
		var fieldErr error
		gender, fieldErr = parseGender(*input.Gender)
		if fieldErr != nil {
			return nil, fieldErr
		}
	}

	var newPictureRef string
	if input.Picture != nil {
		newPictureRef, err = srv.attachments.Save(ctx, personAttachmentFolder, input.Picture)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store picture")
		}
	}
	oldPictureRef := employee.Person.Picture

	if input.Username != nil {
		account.Username = *input.Username
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
			if err := txRepos.AccountRepo().Update(ctx, account); err != nil {
				return errors.Wrap(err, "failed to update account")
			}
		}
		if err := txRepos.PersonRepo().Update(ctx, employee.Person); err != nil {
			return errors.Wrap(err, "failed to update person")
		}

		return nil
	})
	if err != nil {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, newPictureRef)
		srv.log(ctx).Error("Employee profile update failed", slog.Any("employeeID", employee.ID), slog.Any("error", err))

		return nil, err
	}

	if newPictureRef != "" && oldPictureRef != newPictureRef {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, oldPictureRef)
	}

	srv.log(ctx).Info("Employee profile updated", slog.Any("employeeID", employee.ID))

	return employee, nil
}

// DeleteCompany removes the caller's company, every employee of it and all
// involved accounts in one transaction. Blobs are cleaned up after commit.
func (srv *profileService) DeleteCompany(ctx context.Context, callerID uuid.UUID) error {
	account, err := srv.findAccount(ctx, callerID)
	if err != nil {
		return err
	}
	if account.Type != entity.AccountTypeCompany {
		return domainerrors.ErrForbidden
	}

	company, err := srv.companyRepo.FindByAccountID(ctx, callerID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return domainerrors.ErrAccountUnprovisioned
	}
	if err != nil {
		return errors.Wrap(err, "failed to find company")
	}

	employees, err := srv.employeeRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		return errors.Wrap(err, "failed to list employees")
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		for _, employee := range employees {
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
		}

		if err := txRepos.CompanyRepo().Delete(ctx, company.ID); err != nil {
			return errors.Wrap(err, "failed to delete company")
		}
		if err := txRepos.SessionRepo().DeleteByAccountID(ctx, account.ID); err != nil {
			return errors.Wrap(err, "failed to revoke company sessions")
		}
		if err := txRepos.AccountRepo().Delete(ctx, account.ID); err != nil {
			return errors.Wrap(err, "failed to delete company account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Company delete failed", slog.Any("companyID", company.ID), slog.Any("error", err))

		return err
	}

	for _, employee := range employees {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, employee.Person.Picture)
	}
	removeAttachment(ctx, srv.log(ctx), srv.attachments, company.Logo)

	srv.log(ctx).Info("Company deleted", slog.Any("companyID", company.ID))

	return nil
}
