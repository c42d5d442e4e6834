// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/carlosCACB333/bonny/config"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 72 // bcrypt truncates beyond 72 bytes
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := cfg.PasswordStrength
	if policy == nil {
		policy = &config.PasswordStrengthConfig{MinLength: defaultMinPasswordLength}
	}
	if policy.MinLength <= 0 {
		policy.MinLength = defaultMinPasswordLength
	}
	if policy.MaxLength <= 0 || policy.MaxLength > defaultMaxPasswordLength {
		policy.MaxLength = defaultMaxPasswordLength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidateStrength rejects passwords that do not meet the configured policy.
func (h *bcryptHasher) ValidateStrength(password string) error {
	var problems []string

	if len(password) < h.policy.MinLength {
		problems = append(problems, "demasiado corta")
	}
	if len(password) > h.policy.MaxLength {
		problems = append(problems, "demasiado larga")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.policy.RequireUppercase && !hasUpper {
		problems = append(problems, "falta una mayúscula")
	}
	if h.policy.RequireLowercase && !hasLower {
		problems = append(problems, "falta una minúscula")
	}
	if h.policy.RequireNumbers && !hasNumber {
		problems = append(problems, "falta un número")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		problems = append(problems, "falta un carácter especial")
	}

	if len(problems) > 0 {
		return domainerrors.ErrPasswordStrength.WithDetails(strings.Join(problems, ", "))
	}

	return nil
}
