package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error constants for member, attendance and account operations
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrMembroNotFound     = errors.New("membro not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUsuarioNotFound    = errors.New("usuario not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("missing token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when input violates the schema or a business rule
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns nil when there are no field errors
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// PersistenceError wraps a storage failure. Index is the position of the failing
// item in a batch, or -1 for single-item operations.
type PersistenceError struct {
	Op    string
	Index int
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s failed at item %d: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
