package repository

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository defines the standard operations for session token persistence.
// Tokens are stored by hash; the plaintext token never reaches this layer.
type SessionRepository interface {
	// FindByHash retrieves a session token by its hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.SessionToken, error)

	// Create persists a new session token.
	Create(ctx context.Context, token *entity.SessionToken) error

	// DeleteByHash revokes a single session token.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByAccountID revokes every session token of an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error

	// DeleteExpired removes tokens whose expiry has passed, returning the count.
	DeleteExpired(ctx context.Context) (int64, error)
}
