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

// clientService implements the ClientUsecase interface. Clients are walk-in
// customer records: a person without an account.
type clientService struct {
	txManager   repository.TransactionManager
	clientRepo  repository.ClientRepository
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// ClientServiceParams holds dependencies for clientService, injected by Fx.
type ClientServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ClientRepo  repository.ClientRepository
	Attachments service.AttachmentStore
	Logger      *slog.Logger
}

// NewClientService is the constructor for clientService.
func NewClientService(params ClientServiceParams) usecase.ClientUsecase {
	return &clientService{
		txManager:   params.TxManager,
		clientRepo:  params.ClientRepo,
		attachments: params.Attachments,
		logger:      params.Logger,
	}
}

func (srv *clientService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateClient registers a client with its person data as one unit.
func (srv *clientService) CreateClient(ctx context.Context, input *usecase.CreateClientInput) (*entity.Client, error) {
	gender, fieldErr := parseGender(input.Gender)
	if fieldErr != nil {
		return nil, fieldErr
	}

	var pictureRef string
	if input.Picture != nil {
		var err error
		pictureRef, err = srv.attachments.Save(ctx, personAttachmentFolder, input.Picture)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store picture")
		}
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
	client := &entity.Client{
		ID:     uuid.New(),
		Person: person,
	}

	err := srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.PersonRepo().Create(ctx, person); err != nil {
			return errors.Wrap(err, "failed to create person")
		}
		if err := txRepos.ClientRepo().Create(ctx, client); err != nil {
			return errors.Wrap(err, "failed to create client")
		}

		return nil
	})
	if err != nil {
		removeAttachment(ctx, srv.log(ctx), srv.attachments, pictureRef)
		srv.log(ctx).Error("Client creation failed", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Client created", slog.Any("clientID", client.ID))

	return client, nil
}

// GetClient retrieves one client.
func (srv *clientService) GetClient(ctx context.Context, clientID uuid.UUID) (*entity.Client, error) {
	client, err := srv.clientRepo.FindByID(ctx, clientID)
	if errors.Is(err, repository.ErrClientNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find client")
	}

	return client, nil
}

// ListClients retrieves all clients.
func (srv *clientService) ListClients(ctx context.Context) ([]*entity.Client, error) {
	clients, err := srv.clientRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}

	return clients, nil
}

// DeleteClient removes the client and its person in one transaction.
func (srv *clientService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	client, err := srv.clientRepo.FindByID(ctx, clientID)
	if errors.Is(err, repository.ErrClientNotFound) {
		return domainerrors.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to find client")
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.ClientRepo().Delete(ctx, client.ID); err != nil {
			return errors.Wrap(err, "failed to delete client")
		}
		if err := txRepos.PersonRepo().Delete(ctx, client.Person.ID); err != nil {
			return errors.Wrap(err, "failed to delete person")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Client delete failed", slog.Any("clientID", clientID), slog.Any("error", err))

		return err
	}

	removeAttachment(ctx, srv.log(ctx), srv.attachments, client.Person.Picture)

	srv.log(ctx).Info("Client deleted", slog.Any("clientID", clientID))

	return nil
}
