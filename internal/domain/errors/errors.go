package errors

import (
	"net/http"

	"github.com/carlosCACB333/bonny/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches errors by business code, so a sentinel still matches a copy
// produced by WithDetails.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No se encontró la cuenta",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"El nombre de usuario ya está registrado",
		"",
	)

	ErrCompanyNameTaken = NewBaseError(
		http.StatusConflict,
		"COMPANY_NAME_TAKEN",
		"El nombre de la empresa ya está registrado",
		"",
	)

	ErrAccountCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_CREATION_FAILED",
		"No se pudo crear la cuenta",
		"",
	)

	ErrAccountUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_UPDATE_FAILED",
		"No se pudo actualizar la cuenta",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_INACTIVE",
		"La cuenta está desactivada",
		"",
	)

	ErrAccountUnprovisioned = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_UNPROVISIONED",
		"La cuenta no tiene un perfil asociado",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Usuario o contraseña incorrectos",
		"",
	)

	ErrOldPasswordMismatch = NewBaseError(
		http.StatusUnauthorized,
		"OLD_PASSWORD_MISMATCH",
		"Su contraseña antigua es incorrecta",
		"",
	)

	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"Sesión inválida o expirada",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Error al procesar la contraseña",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"La contraseña no cumple los requisitos de seguridad",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Los datos enviados no son válidos",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"La transacción de base de datos falló",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del sistema",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acceso denegado",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflicto de recursos",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "La ejecución en base de datos falló"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
