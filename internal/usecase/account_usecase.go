// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
)

// SignupCompanyInput defines the data required to register a company account.
type SignupCompanyInput struct {
	Username  string `json:"username" form:"username" validate:"required,min=4,max=150"`
	Password  string `json:"password" form:"password" validate:"required"`
	Password2 string `json:"password2" form:"password2" validate:"required"`
	Name      string `json:"name" form:"name" validate:"required,max=100"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" form:"address" validate:"omitempty,max=200"`
}

// LoginInput defines the credentials for a login attempt.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ResetPasswordInput defines the data required to change a password.
type ResetPasswordInput struct {
	Username     string `json:"username" form:"username" validate:"required"`
	OldPassword  string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword  string `json:"new_password" form:"new_password" validate:"required"`
	NewPassword2 string `json:"new_password2" form:"new_password2" validate:"required"`
}

// Session represents an authenticated session: the plaintext token handed
// to the client plus the role-resolved profile of the account.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *entity.Account `json:"account"`
	Profile   *entity.Profile `json:"profile"`
}

// AccountUsecase defines the interface for account and session operations.
type AccountUsecase interface {
	// SignupCompany registers a company account and logs it in.
	SignupCompany(ctx context.Context, input *SignupCompanyInput) (*Session, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*Session, error)

	// Logout revokes the given session token.
	Logout(ctx context.Context, token string) error

	// CheckSession validates a token and returns the session it belongs to.
	CheckSession(ctx context.Context, token string) (*Session, error)

	// ResetPassword replaces the account password after verifying the old one.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
