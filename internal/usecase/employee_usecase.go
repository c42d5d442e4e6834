package usecase

import (
	"context"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/google/uuid"
)

// CreateEmployeeInput defines the data required to register an employee.
// The owning company is resolved from the caller, never from the input.
type CreateEmployeeInput struct {
	Username  string     `json:"username" form:"username" validate:"required,min=4,max=150"`
	Password  string     `json:"password" form:"password" validate:"required"`
	Password2 string     `json:"password2" form:"password2" validate:"required"`
	Role      string     `json:"role" form:"role" validate:"required"`
	FirstName string     `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" form:"email" validate:"omitempty,email,max=150"`
	Phone     string     `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Address   string     `json:"address" form:"address" validate:"omitempty,max=200"`
	Birth     *time.Time `json:"birth,omitempty" form:"birth"`
	Gender    string     `json:"gender" form:"gender" validate:"omitempty,oneof=M F O"`

	// Picture is an optional image attachment, taken from the multipart form.
	Picture *service.Attachment `json:"-"`
}

// UpdateEmployeeInput defines a partial update across the employee aggregate.
// Nil fields are left untouched. The account whitelist is the username.
type UpdateEmployeeInput struct {
	Username  *string    `json:"username,omitempty" form:"username" validate:"omitempty,min=4,max=150"`
	Role      *string    `json:"role,omitempty" form:"role"`
	FirstName *string    `json:"first_name,omitempty" form:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name,omitempty" form:"last_name" validate:"omitempty,max=100"`
	Email     *string    `json:"email,omitempty" form:"email" validate:"omitempty,email,max=150"`
	Phone     *string    `json:"phone,omitempty" form:"phone" validate:"omitempty,max=20"`
	Address   *string    `json:"address,omitempty" form:"address" validate:"omitempty,max=200"`
	Birth     *time.Time `json:"birth,omitempty" form:"birth"`
	Gender    *string    `json:"gender,omitempty" form:"gender" validate:"omitempty,oneof=M F O"`

	// Picture replaces the stored one; the old blob is deleted after commit.
	Picture *service.Attachment `json:"-"`
}

// EmployeeUsecase defines the interface for tenant-scoped employee management.
// Every operation takes the caller's account ID explicitly and resolves the
// acting company from it; employees of other companies are not found.
type EmployeeUsecase interface {
	// CreateEmployee registers an employee under the caller's company.
	CreateEmployee(ctx context.Context, callerID uuid.UUID, input *CreateEmployeeInput) (*entity.Employee, error)

	// GetEmployee retrieves one employee of the caller's company.
	GetEmployee(ctx context.Context, callerID, employeeID uuid.UUID) (*entity.Employee, error)

	// ListEmployees retrieves all employees of the caller's company.
	ListEmployees(ctx context.Context, callerID uuid.UUID) ([]*entity.Employee, error)

	// SearchEmployees filters the caller's employees by name or email.
	SearchEmployees(ctx context.Context, callerID uuid.UUID, query string) ([]*entity.Employee, error)

	// UpdateEmployee applies a partial update to one employee.
	UpdateEmployee(ctx context.Context, callerID, employeeID uuid.UUID, input *UpdateEmployeeInput) (*entity.Employee, error)

	// DeleteEmployee removes the employee, its person and its account as one unit.
	DeleteEmployee(ctx context.Context, callerID, employeeID uuid.UUID) error
}
