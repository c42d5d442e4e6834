package errors

import (
	"net/http"
	"sort"
	"strings"
)

// FieldsError is a validation error carrying per-field messages, so the
// client can render them next to the offending inputs. It implements the
// AppError interface with a 400 status.
type FieldsError struct {
	fields map[string][]string
}

// NewFieldsError creates an empty per-field validation error.
func NewFieldsError() *FieldsError {
	return &FieldsError{fields: make(map[string][]string)}
}

// NewFieldError creates a validation error with a single field message.
func NewFieldError(field, message string) *FieldsError {
	return NewFieldsError().Add(field, message)
}

// Add appends a message for a field and returns the error for chaining.
func (e *FieldsError) Add(field, message string) *FieldsError {
	e.fields[field] = append(e.fields[field], message)

	return e
}

// Fields returns the per-field messages.
func (e *FieldsError) Fields() map[string][]string {
	return e.fields
}

// HasErrors reports whether any field message has been recorded.
func (e *FieldsError) HasErrors() bool {
	return len(e.fields) > 0
}

// Error implements the error interface with a deterministic field order.
func (e *FieldsError) Error() string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.fields[name], "; "))
	}

	return strings.Join(parts, ", ")
}

// HTTPCode returns the HTTP status code
func (e *FieldsError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *FieldsError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *FieldsError) Message() string {
	return "Los datos enviados no son válidos"
}

// Details returns detailed error information
func (e *FieldsError) Details() string {
	return e.Error()
}
