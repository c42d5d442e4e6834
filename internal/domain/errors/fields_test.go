package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsError_AccumulatesMessages(t *testing.T) {
	err := NewFieldsError().
		Add("password", "demasiado corta").
		Add("password", "falta un número").
		Add("username", "ya está registrado")

	assert.True(t, err.HasErrors())
	assert.Len(t, err.Fields()["password"], 2)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode())
}

func TestFieldsError_ErrorIsDeterministic(t *testing.T) {
	err := NewFieldsError().
		Add("b", "segundo").
		Add("a", "primero")

	assert.Equal(t, "a: primero, b: segundo", err.Error())
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("gender", "El género no es válido")

	assert.Equal(t, []string{"El género no es válido"}, err.Fields()["gender"])
	assert.False(t, NewFieldsError().HasErrors())
}

func TestBaseError_IsMatchesByCode(t *testing.T) {
	withDetails := ErrPasswordStrength.WithDetails("demasiado corta")

	assert.ErrorIs(t, withDetails, ErrPasswordStrength)
	assert.NotErrorIs(t, withDetails, ErrInvalidCredentials)
}
