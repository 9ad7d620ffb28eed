package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// deactivated accounts; callers must not distinguish between them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden means the caller is authenticated but the role table
	// (or the missing-company gate) denies the operation.
	ErrForbidden = errors.New("insufficient permissions")
)

// NotFoundError is returned when an entity is absent or belongs to another
// company. The two cases are intentionally indistinguishable.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ConflictError is returned for state conflicts: station already activated,
// duplicate email, resolving a resolved alert, self-deactivation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail back to the client.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("invalid input: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("invalid input (%d fields)", len(e.Fields))
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns the error itself when any field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func Invalid(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
