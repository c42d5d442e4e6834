package repository

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/google/uuid"
)

// EmployeeRepository defines the standard operations for employee persistence.
// All lookups that take a companyID are tenant-scoped: an employee of a
// different company behaves exactly like a missing row.
type EmployeeRepository interface {
	// FindByID retrieves an employee of the given company with its account
	// and person preloaded. Returns ErrEmployeeNotFound for foreign tenants.
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Employee, error)

	// FindByAccountID retrieves the employee owned by the given account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Employee, error)

	// ListByCompany retrieves all employees of a company.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Employee, error)

	// SearchByCompany retrieves the employees of a company whose person
	// first name, last name or email contains the query, case-insensitively.
	SearchByCompany(ctx context.Context, companyID uuid.UUID, query string) ([]*entity.Employee, error)

	// Create persists a new employee linked to existing account and person rows.
	Create(ctx context.Context, employee *entity.Employee) error

	// Update modifies an existing employee row (not its account or person).
	Update(ctx context.Context, employee *entity.Employee) error

	// Delete removes an employee row.
	Delete(ctx context.Context, id uuid.UUID) error
}
