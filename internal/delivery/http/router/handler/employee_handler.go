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

// EmployeeHandler holds dependencies for employee management handlers.
// All routes run behind the auth middleware; the caller account resolves
// the acting company inside the usecase.
type EmployeeHandler struct {
	uc          usecase.EmployeeUsecase
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// NewEmployeeHandler is the constructor for EmployeeHandler, injected by Fx.
func NewEmployeeHandler(uc usecase.EmployeeUsecase, attachments service.AttachmentStore, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		uc:          uc,
		attachments: attachments,
		logger:      logger,
	}
}

// Create handles the employee registration request.
func (h *EmployeeHandler) Create(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.CreateEmployeeInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos del empleado inválidos")
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

	employee, err := h.uc.CreateEmployee(c.Request().Context(), account.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEmployeeView(employee, h.attachments), "Empleado registrado correctamente")
}

// List returns all employees of the caller's company. With a "search" query
// parameter it filters by name or email instead.
func (h *EmployeeHandler) List(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	query := c.QueryParam("search")
	if query != "" {
		found, err := h.uc.SearchEmployees(c.Request().Context(), account.ID, query)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toEmployeeViews(found, h.attachments), "")
	}

	all, err := h.uc.ListEmployees(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEmployeeViews(all, h.attachments), "")
}

// Get returns one employee of the caller's company.
func (h *EmployeeHandler) Get(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "NOT_FOUND", "No se encontró el empleado")
	}

	employee, err := h.uc.GetEmployee(c.Request().Context(), account.ID, employeeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEmployeeView(employee, h.attachments), "")
}

// Update applies a partial update to one employee of the caller's company.
func (h *EmployeeHandler) Update(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "NOT_FOUND", "No se encontró el empleado")
	}

	input := new(usecase.UpdateEmployeeInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos del empleado inválidos")
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

	employee, err := h.uc.UpdateEmployee(c.Request().Context(), account.ID, employeeID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEmployeeView(employee, h.attachments), "Empleado actualizado")
}

// Delete removes one employee of the caller's company.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return errors.WithStack(err)
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "NOT_FOUND", "No se encontró el empleado")
	}

	if err := h.uc.DeleteEmployee(c.Request().Context(), account.ID, employeeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Empleado eliminado")
}
