package handler

import (
	"log/slog"
	"net/http"

	"github.com/carlosCACB333/bonny/internal/delivery/http/response"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClientHandler holds dependencies for client record handlers.
type ClientHandler struct {
	uc          usecase.ClientUsecase
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// NewClientHandler is the constructor for ClientHandler, injected by Fx.
func NewClientHandler(uc usecase.ClientUsecase, attachments service.AttachmentStore, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		uc:          uc,
		attachments: attachments,
		logger:      logger,
	}
}

// Create registers a walk-in client.
func (h *ClientHandler) Create(c echo.Context) error {
	input := new(usecase.CreateClientInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos del cliente inválidos")
	}
	if birth, err := formBirth(c); err != nil {
		return errors.WithStack(err)
	} else if birth != nil {
		input.Birth = birth
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	picture, file, err := formAttachment(c, "picture")
	if err != nil {
		return errors.WithStack(err)
	}
	if file != nil {
		defer file.Close()
	}
	input.Picture = picture

	client, err := h.uc.CreateClient(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toClientView(client, h.attachments), "Cliente registrado correctamente")
}

// List returns all clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.uc.ListClients(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toClientViews(clients, h.attachments), "")
}

// Get returns one client.
func (h *ClientHandler) Get(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "NOT_FOUND", "No se encontró el cliente")
	}

	client, err := h.uc.GetClient(c.Request().Context(), clientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toClientView(client, h.attachments), "")
}

// Delete removes one client.
func (h *ClientHandler) Delete(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "NOT_FOUND", "No se encontró el cliente")
	}

	if err := h.uc.DeleteClient(c.Request().Context(), clientID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cliente eliminado")
}
