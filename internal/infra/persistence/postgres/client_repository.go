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

// clientRepository implements the repository.ClientRepository interface.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository is the constructor for clientRepository.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{
		db: db,
	}
}

// FindByID retrieves a client with its person preloaded.
func (repo *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var clientM model.ClientModel

	if err := repo.db.WithContext(ctx).
		Preload("Person").
		Where("id = ?", id).
		First(&clientM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClientNotFound
		}

		return nil, errors.Wrap(err, "failed to find client by ID")
	}

	return toClientDomain(&clientM), nil
}

// List retrieves all clients.
func (repo *clientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	var clientModels []*model.ClientModel

	if err := repo.db.WithContext(ctx).
		Preload("Person").
		Order("created_at DESC").
		Find(&clientModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}

	clients := make([]*entity.Client, 0, len(clientModels))
	for _, clientM := range clientModels {
		clients = append(clients, toClientDomain(clientM))
	}

	return clients, nil
}

// Create persists a new client linked to an existing person row.
func (repo *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	clientM := fromClientDomain(client)

	if err := repo.db.WithContext(ctx).Create(clientM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid person reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create client")
	}

	client.ID = clientM.ID
	client.CreatedAt = clientM.CreatedAt
	client.UpdatedAt = clientM.UpdatedAt

	return nil
}

// Delete removes a client row.
func (repo *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ClientModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete client")
	}

	if result.RowsAffected == 0 {
		return repository.ErrClientNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toClientDomain converts a GORM ClientModel to a domain Client entity.
func toClientDomain(data *model.ClientModel) *entity.Client {
	if data == nil {
		return nil
	}

	return &entity.Client{
		ID:        data.ID,
		Person:    toPersonDomain(data.Person),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromClientDomain converts a domain Client entity to a GORM ClientModel.
func fromClientDomain(data *entity.Client) *model.ClientModel {
	if data == nil {
		return nil
	}

	clientM := &model.ClientModel{
		ID:        data.ID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Person != nil {
		clientM.PersonID = data.Person.ID
	}

	return clientM
}
