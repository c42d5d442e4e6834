// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// echoValidator wraps a validator instance for echo.
type echoValidator struct {
	validate *validator.Validate
}

// New creates the echo Validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and converts violations into a per-field
// validation error, so the error handler renders them in the envelope.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errors.Wrap(err, "validation failed")
	}

	fieldsErr := domainerrors.NewFieldsError()
	for _, violation := range violations {
		fieldsErr.Add(violation.Field(), messageForTag(violation))
	}

	return fieldsErr
}

func messageForTag(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Debe ser un correo electrónico válido"
	case "min":
		return "Demasiado corto (mínimo " + violation.Param() + ")"
	case "max":
		return "Demasiado largo (máximo " + violation.Param() + ")"
	case "oneof":
		return "Debe ser uno de: " + violation.Param()
	default:
		return "Valor inválido"
	}
}
