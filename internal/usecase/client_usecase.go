package usecase

import (
	"context"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/google/uuid"
)

// CreateClientInput defines the data required to register a walk-in client.
type CreateClientInput struct {
	FirstName string     `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" form:"email" validate:"omitempty,email,max=150"`
	Phone     string     `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Address   string     `json:"address" form:"address" validate:"omitempty,max=200"`
	Birth     *time.Time `json:"birth,omitempty" form:"birth"`
	Gender    string     `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`

	Picture *service.Attachment `json:"-"`
}

// ClientUsecase defines the interface for client record management.
type ClientUsecase interface {
	// CreateClient registers a client with its person data.
	CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error)

	// GetClient retrieves one client.
	GetClient(ctx context.Context, clientID uuid.UUID) (*entity.Client, error)

	// ListClients retrieves all clients.
	ListClients(ctx context.Context) ([]*entity.Client, error)

	// DeleteClient removes the client and its person as one unit.
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
}
