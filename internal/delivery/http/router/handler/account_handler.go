package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/carlosCACB333/bonny/internal/delivery/http/response"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account and session handlers.
type AccountHandler struct {
	uc          usecase.AccountUsecase
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, attachments service.AttachmentStore, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:          uc,
		attachments: attachments,
		logger:      logger,
	}
}

// SignupCompany handles the company registration request.
func (h *AccountHandler) SignupCompany(c echo.Context) error {
	input := new(usecase.SignupCompanyInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de registro inválidos")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.uc.SignupCompany(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionView(session, h.attachments), "Empresa registrada correctamente")
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Credenciales inválidas")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionView(session, h.attachments), "Inicio de sesión exitoso")
}

// Logout revokes the session token of the current request.
func (h *AccountHandler) Logout(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return response.Unauthorized(c, "SESSION_INVALID", "Falta el encabezado de autorización")
	}

	if err := h.uc.Logout(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Sesión cerrada")
}

// CheckSession validates the session token of the current request and
// returns the role-resolved payload.
func (h *AccountHandler) CheckSession(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return response.Unauthorized(c, "SESSION_INVALID", "Falta el encabezado de autorización")
	}

	session, err := h.uc.CheckSession(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionView(session, h.attachments), "Sesión válida")
}

// ResetPassword handles the password change request.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	input := new(usecase.ResetPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos inválidos")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contraseña actualizada")
}

// bearerToken reads the session token from the Authorization header,
// accepting both "Token <x>" and "Bearer <x>" schemes.
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(authHeader, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, scheme))

			return token, token != ""
		}
	}

	return "", false
}
