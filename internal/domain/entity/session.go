package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is the persisted side of an issued session token. Only the
// SHA-256 hash of the token string is stored, so a database leak does not
// leak usable credentials. Deleting the row revokes the session.
type SessionToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given time.
func (t *SessionToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
