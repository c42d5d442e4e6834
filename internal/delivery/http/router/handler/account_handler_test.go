package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carlosCACB333/bonny/internal/delivery/http/validator"
	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountUsecase returns canned results and records what it was called with.
type fakeAccountUsecase struct {
	session *usecase.Session
	err     error

	loggedOut []string
	checked   []string
}

func (f *fakeAccountUsecase) SignupCompany(_ context.Context, _ *usecase.SignupCompanyInput) (*usecase.Session, error) {
	return f.session, f.err
}

func (f *fakeAccountUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.Session, error) {
	return f.session, f.err
}

func (f *fakeAccountUsecase) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)

	return f.err
}

func (f *fakeAccountUsecase) CheckSession(_ context.Context, token string) (*usecase.Session, error) {
	f.checked = append(f.checked, token)

	return f.session, f.err
}

func (f *fakeAccountUsecase) ResetPassword(_ context.Context, _ *usecase.ResetPasswordInput) error {
	return f.err
}

// passthroughStore resolves attachment references as-is.
type passthroughStore struct{}

func (passthroughStore) Save(_ context.Context, folder string, _ *service.Attachment) (string, error) {
	return folder + "/ref", nil
}

func (passthroughStore) Remove(_ context.Context, _ string) error { return nil }

func (passthroughStore) URL(ref string) string { return ref }

func testSession() *usecase.Session {
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     "bodega_admin",
		PasswordHash: "super-secret-hash",
		IsActive:     true,
		Type:         entity.AccountTypeCompany,
		DateJoined:   time.Now().UTC(),
	}

	return &usecase.Session{
		Token:     "session-token",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		Account:   account,
		Profile: &entity.Profile{
			Type:    entity.AccountTypeCompany,
			Company: &entity.Company{ID: uuid.New(), Account: account, Name: "Bodega Central"},
		},
	}
}

func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return NewAccountHandler(uc, passthroughStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAccountHandler_Login_Success(t *testing.T) {
	uc := &fakeAccountUsecase{session: testSession()}
	handler := newAccountHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/login",
		`{"username":"bodega_admin","password":"Secret123!"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Inicio de sesión exitoso")
	assert.Contains(t, body, "session-token")
	assert.Contains(t, body, "Bodega Central")
	// The password hash never serializes.
	assert.NotContains(t, body, "super-secret-hash")
}

func TestAccountHandler_Login_MissingFields(t *testing.T) {
	handler := newAccountHandler(&fakeAccountUsecase{})

	c, _ := newHandlerContext(t, http.MethodPost, "/auth/login", `{"username":"bodega_admin"}`)

	err := handler.Login(c)
	require.Error(t, err)

	var fieldsErr *domainerrors.FieldsError
	require.ErrorAs(t, err, &fieldsErr)
	assert.Contains(t, fieldsErr.Fields(), "Password")
}

func TestAccountHandler_SignupCompany_Created(t *testing.T) {
	uc := &fakeAccountUsecase{session: testSession()}
	handler := newAccountHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/signup",
		`{"username":"bodega_admin","password":"Secret123!","password2":"Secret123!","name":"Bodega Central"}`)

	require.NoError(t, handler.SignupCompany(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Empresa registrada correctamente")
}

func TestAccountHandler_Logout_TokenSchemes(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "token scheme", header: "Token abc123", want: "abc123"},
		{name: "bearer scheme", header: "Bearer xyz789", want: "xyz789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeAccountUsecase{}
			handler := newAccountHandler(uc)

			c, rec := newHandlerContext(t, http.MethodPost, "/auth/logout", "")
			c.Request().Header.Set("Authorization", tt.header)

			require.NoError(t, handler.Logout(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tt.want}, uc.loggedOut)
		})
	}
}

func TestAccountHandler_Logout_MissingHeader(t *testing.T) {
	uc := &fakeAccountUsecase{}
	handler := newAccountHandler(uc)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/logout", "")

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, uc.loggedOut)
}

func TestAccountHandler_CheckSession_Success(t *testing.T) {
	uc := &fakeAccountUsecase{session: testSession()}
	handler := newAccountHandler(uc)

	c, rec := newHandlerContext(t, http.MethodGet, "/auth/session", "")
	c.Request().Header.Set("Authorization", "Token session-token")

	require.NoError(t, handler.CheckSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"session-token"}, uc.checked)
	assert.Contains(t, rec.Body.String(), "Sesión válida")
}

func TestAccountHandler_ResetPassword_Success(t *testing.T) {
	handler := newAccountHandler(&fakeAccountUsecase{})

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/password",
		`{"username":"bodega_admin","old_password":"Secret123!","new_password":"Renewed456!","new_password2":"Renewed456!"}`)

	require.NoError(t, handler.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contraseña actualizada")
}
