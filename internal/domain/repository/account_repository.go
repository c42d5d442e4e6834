// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific sentinel errors returned by the persistence layer.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrPersonNotFound   = errors.New("person not found")
	ErrTokenNotFound    = errors.New("session token not found")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its unique username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create persists a new account. A unique-constraint violation on the
	// username surfaces as a conflict domain error.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account row.
	Delete(ctx context.Context, id uuid.UUID) error
}
