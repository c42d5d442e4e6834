package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "github.com/carlosCACB333/bonny/internal/delivery/context"
	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionCheckStub only implements the CheckSession path the middleware uses.
type sessionCheckStub struct {
	session *usecase.Session
	err     error
	tokens  []string
}

func (s *sessionCheckStub) SignupCompany(_ context.Context, _ *usecase.SignupCompanyInput) (*usecase.Session, error) {
	return nil, nil
}

func (s *sessionCheckStub) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.Session, error) {
	return nil, nil
}

func (s *sessionCheckStub) Logout(_ context.Context, _ string) error { return nil }

func (s *sessionCheckStub) CheckSession(_ context.Context, token string) (*usecase.Session, error) {
	s.tokens = append(s.tokens, token)

	return s.session, s.err
}

func (s *sessionCheckStub) ResetPassword(_ context.Context, _ *usecase.ResetPasswordInput) error {
	return nil
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticate_SetsCaller(t *testing.T) {
	account := &entity.Account{ID: uuid.New(), Username: "bodega_admin", IsActive: true}
	stub := &sessionCheckStub{session: &usecase.Session{
		Token:     "session-token",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		Account:   account,
	}}
	middleware := NewAuthMiddleware(stub)

	c, _ := newAuthContext("Token session-token")
	var caller *entity.Account
	next := func(c echo.Context) error {
		caller, _ = deliverycontext.GetCaller(c)

		return nil
	}

	require.NoError(t, middleware.Authenticate(next)(c))
	assert.Equal(t, []string{"session-token"}, stub.tokens)
	require.NotNil(t, caller)
	assert.Equal(t, account.ID, caller.ID)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	stub := &sessionCheckStub{}
	middleware := NewAuthMiddleware(stub)

	c, rec := newAuthContext("")
	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true

		return nil
	}

	require.NoError(t, middleware.Authenticate(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.Empty(t, stub.tokens)
}

func TestAuthenticate_InvalidSession(t *testing.T) {
	stub := &sessionCheckStub{err: domainerrors.ErrSessionInvalid}
	middleware := NewAuthMiddleware(stub)

	c, _ := newAuthContext("Bearer revoked-token")
	next := func(c echo.Context) error { return nil }

	err := middleware.Authenticate(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}

func TestAuthenticate_AcceptsBothSchemes(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer abc"} {
		stub := &sessionCheckStub{session: &usecase.Session{
			Account: &entity.Account{ID: uuid.New()},
		}}
		middleware := NewAuthMiddleware(stub)

		c, _ := newAuthContext(header)
		require.NoError(t, middleware.Authenticate(func(c echo.Context) error { return nil })(c))
		assert.Equal(t, []string{"abc"}, stub.tokens)
	}
}
