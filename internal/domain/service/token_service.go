package service

import (
	"time"

	"github.com/google/uuid"
)

// IssuedToken is a freshly minted session token. Token is the plaintext
// handed to the client once; TokenHash is what gets persisted.
type IssuedToken struct {
	Token     string
	TokenHash string
	ExpiresAt time.Time
}

// TokenService issues and validates session tokens.
type TokenService interface {
	// Issue mints a signed session token for the account.
	Issue(accountID uuid.UUID) (*IssuedToken, error)

	// Validate checks the token signature and expiry, returning the
	// account ID it was issued for.
	Validate(token string) (uuid.UUID, error)

	// Hash derives the persistence hash of a plaintext token.
	Hash(token string) string
}
