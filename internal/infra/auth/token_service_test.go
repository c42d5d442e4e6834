package auth

import (
	"testing"
	"time"

	"github.com/carlosCACB333/bonny/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *jwtTokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-secret"
	cfg.Auth = &config.AuthConfig{SessionTTL: ttl}

	svc, err := NewJWTTokenService(cfg)
	require.NoError(t, err)

	return svc.(*jwtTokenService)
}

func TestNewJWTTokenService_RequiresSecret(t *testing.T) {
	_, err := NewJWTTokenService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	accountID := uuid.New()

	issued, err := svc.Issue(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, svc.Hash(issued.Token), issued.TokenHash)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), issued.ExpiresAt, time.Minute)

	parsed, err := svc.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, accountID, parsed)
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other := newTestTokenService(t, time.Hour)
	other.secret = []byte("another-secret")

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(issued.Token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	_, err := svc.Validate("not-a-jwt")
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(issued.Token)
	assert.Error(t, err)
}

func TestJWTTokenService_DistinctTokensPerIssue(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	accountID := uuid.New()

	first, err := svc.Issue(accountID)
	require.NoError(t, err)
	second, err := svc.Issue(accountID)
	require.NoError(t, err)

	// Same account, same second: still two distinct revocable tokens.
	assert.NotEqual(t, first.Token, second.Token)
	assert.NotEqual(t, first.TokenHash, second.TokenHash)
}

func TestJWTTokenService_HashIsDeterministic(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	assert.Equal(t, svc.Hash("abc"), svc.Hash("abc"))
	assert.NotEqual(t, svc.Hash("abc"), svc.Hash("abd"))
	assert.Len(t, svc.Hash("abc"), 64)
}
