package repository

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/google/uuid"
)

// CompanyRepository defines the standard operations for company persistence.
type CompanyRepository interface {
	// FindByID retrieves a company with its account preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// FindByAccountID retrieves the company owned by the given account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Company, error)

	// Create persists a new company linked to an existing account.
	// A unique-constraint violation on the name surfaces as a conflict domain error.
	Create(ctx context.Context, company *entity.Company) error

	// Update modifies an existing company row (not its account).
	Update(ctx context.Context, company *entity.Company) error

	// Delete removes a company row.
	Delete(ctx context.Context, id uuid.UUID) error
}
