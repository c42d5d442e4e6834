package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlosCACB333/bonny/internal/delivery/http/response"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func newTestErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleHTTPError_AppError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	m.HandleHTTPError(domainerrors.ErrInvalidCredentials, c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Usuario o contraseña incorrectos", envelope.Message)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	m.HandleHTTPError(errors.Wrap(domainerrors.ErrNotFound, "lookup failed"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestHandleHTTPError_FieldsError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	fieldsErr := domainerrors.NewFieldError("password2", "Las contraseñas no coinciden")
	m.HandleHTTPError(fieldsErr, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Equal(t, []string{"Las contraseñas no coinciden"}, envelope.Error.Fields["password2"])
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	m.HandleHTTPError(echo.NewHTTPError(http.StatusMethodNotAllowed, "método no permitido"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "HTTP_ERROR", envelope.Error.Code)
}

func TestHandleHTTPError_UnknownError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	m.HandleHTTPError(errors.New("database exploded"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Error interno del sistema", envelope.Message)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
}

func TestHandleHTTPError_CommittedResponse(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorContext()

	require.NoError(t, c.NoContent(http.StatusOK))
	m.HandleHTTPError(errors.New("too late"), c)

	// Nothing is written over an already committed response.
	assert.Equal(t, http.StatusOK, rec.Code)
}
