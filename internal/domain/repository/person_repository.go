package repository

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/google/uuid"
)

// PersonRepository defines the standard operations for person persistence.
type PersonRepository interface {
	// FindByID retrieves a single person by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Person, error)

	// Create persists a new person.
	Create(ctx context.Context, person *entity.Person) error

	// Update modifies an existing person.
	Update(ctx context.Context, person *entity.Person) error

	// Delete removes a person row.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientRepository defines the standard operations for client persistence.
type ClientRepository interface {
	// FindByID retrieves a client with its person preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)

	// List retrieves all clients.
	List(ctx context.Context) ([]*entity.Client, error)

	// Create persists a new client linked to an existing person row.
	Create(ctx context.Context, client *entity.Client) error

	// Delete removes a client row.
	Delete(ctx context.Context, id uuid.UUID) error
}
