// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/pkg/errors"
)

// resolveProfile loads the profile aggregate matching the account type.
// An account whose aggregate row is missing is unprovisioned, which is a
// data-integrity problem rather than a caller mistake.
func resolveProfile(
	ctx context.Context,
	account *entity.Account,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
) (*entity.Profile, error) {
	switch account.Type {
	case entity.AccountTypeCompany:
		company, err := companyRepo.FindByAccountID(ctx, account.ID)
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrAccountUnprovisioned
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find company profile")
		}
		company.Account = account

		return &entity.Profile{Type: entity.AccountTypeCompany, Company: company}, nil

	case entity.AccountTypeEmployee:
		employee, err := employeeRepo.FindByAccountID(ctx, account.ID)
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, domainerrors.ErrAccountUnprovisioned
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find employee profile")
		}
		employee.Account = account

		return &entity.Profile{Type: entity.AccountTypeEmployee, Employee: employee}, nil

	default:
		return nil, domainerrors.ErrAccountUnprovisioned
	}
}

// resolveOwningCompany resolves the company an account acts for: its own
// company for company accounts, the employer for employee accounts.
func resolveOwningCompany(
	ctx context.Context,
	account *entity.Account,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
) (*entity.Company, error) {
	profile, err := resolveProfile(ctx, account, companyRepo, employeeRepo)
	if err != nil {
		return nil, err
	}

	if profile.Type == entity.AccountTypeCompany {
		return profile.Company, nil
	}

	employee := profile.Employee
	if employee.Company != nil {
		return employee.Company, nil
	}

	company, err := companyRepo.FindByID(ctx, employee.CompanyID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return nil, domainerrors.ErrAccountUnprovisioned
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find employer company")
	}

	return company, nil
}

// removeAttachment deletes a stored blob best-effort. Failures are logged
// and swallowed so they never roll back a committed database change.
func removeAttachment(ctx context.Context, log *slog.Logger, store service.AttachmentStore, ref string) {
	if ref == "" {
		return
	}
	if err := store.Remove(ctx, ref); err != nil {
		log.Warn("Failed to remove attachment", slog.String("ref", ref), slog.Any("error", err))
	}
}
