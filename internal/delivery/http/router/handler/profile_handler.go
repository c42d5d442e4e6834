package handler

import (
	"log/slog"
	"net/http"

	"github.com/carlosCACB333/bonny/internal/delivery/http/response"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	uc          usecase.ProfileUsecase
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, attachments service.AttachmentStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:          uc,
		attachments: attachments,
		logger:      logger,
	}
}

// Get returns the role-resolved profile of the calling account.
func (h *ProfileHandler) Get(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := map[string]any{
		"account":  toAccountView(account),
		"company":  toCompanyView(profile.Company, h.attachments),
		"employee": toEmployeeView(profile.Employee, h.attachments),
	}

	return response.Success(c, http.StatusOK, payload, "")
}

// UpdateCompany applies a partial update to the caller's company profile.
func (h *ProfileHandler) UpdateCompany(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.UpdateCompanyProfileInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de la empresa inválidos")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	logo, file, err := formAttachment(c, "logo")
	if err != nil {
		return errors.WithStack(err)
	}
	if file != nil {
		defer file.Close()
	}
	input.Logo = logo

	company, err := h.uc.UpdateCompanyProfile(c.Request().Context(), account.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyView(company, h.attachments), "Empresa actualizada")
}

// UpdateEmployee applies a partial update to the caller's own person data.
func (h *ProfileHandler) UpdateEmployee(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.UpdateEmployeeProfileInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos del perfil inválidos")
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

	employee, err := h.uc.UpdateEmployeeProfile(c.Request().Context(), account.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEmployeeView(employee, h.attachments), "Perfil actualizado")
}
