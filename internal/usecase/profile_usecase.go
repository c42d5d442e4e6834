package usecase

import (
	"context"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/google/uuid"
)

// UpdateCompanyProfileInput defines a partial update of the caller's company.
// Nil fields are left untouched. The account whitelist is the username.
type UpdateCompanyProfileInput struct {
	Username *string `json:"username,omitempty" form:"username" validate:"omitempty,min=4,max=150"`
	Name     *string `json:"name,omitempty" form:"name" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" form:"phone" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" form:"address" validate:"omitempty,max=200"`

	// Logo replaces the stored one; the old blob is deleted after commit.
	Logo *service.Attachment `json:"-"`
}

// UpdateEmployeeProfileInput defines a partial update of the caller's own
// person data. Role and company are not writable through the profile.
type UpdateEmployeeProfileInput struct {
	Username  *string    `json:"username,omitempty" form:"username" validate:"omitempty,min=4,max=150"`
	FirstName *string    `json:"first_name,omitempty" form:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name,omitempty" form:"last_name" validate:"omitempty,max=100"`
	Email     *string    `json:"email,omitempty" form:"email" validate:"omitempty,email,max=150"`
	Phone     *string    `json:"phone,omitempty" form:"phone" validate:"omitempty,max=20"`
	Address   *string    `json:"address,omitempty" form:"address" validate:"omitempty,max=200"`
	Birth     *time.Time `json:"birth,omitempty" form:"birth"`
	Gender    *string    `json:"gender,omitempty" form:"gender" validate:"omitempty,oneof=M F O"`

	Picture *service.Attachment `json:"-"`
}

// ProfileUsecase defines the interface for profile-related operations.
type ProfileUsecase interface {
	// GetProfile resolves the role-specific profile of an account.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error)

	// UpdateCompanyProfile applies a partial update to the caller's company.
	UpdateCompanyProfile(ctx context.Context, callerID uuid.UUID, input *UpdateCompanyProfileInput) (*entity.Company, error)

	// UpdateEmployeeProfile applies a partial update to the caller's own data.
	UpdateEmployeeProfile(ctx context.Context, callerID uuid.UUID, input *UpdateEmployeeProfileInput) (*entity.Employee, error)

	// DeleteCompany removes the caller's company with its employees and
	// accounts as one unit. Not exposed over HTTP yet.
	DeleteCompany(ctx context.Context, callerID uuid.UUID) error
}
