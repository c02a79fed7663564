// Package errors defines the application error kinds surfaced by the state containers.
// AppError carries a kind for classification, a user-facing message and an optional cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an AppError.
type Kind string

// Error kind constants
const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindNetwork    Kind = "NETWORK_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// AppError represents a failure that is reported to the user.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same kind. A target with a message
// only matches errors carrying that exact message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = &AppError{Kind: KindValidation}
	ErrConflict   = &AppError{Kind: KindConflict}
	ErrAuth       = &AppError{Kind: KindAuth}
	ErrNotFound   = &AppError{Kind: KindNotFound}
	ErrNetwork    = &AppError{Kind: KindNetwork}
)

// New creates a new AppError
func New(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates an error for malformed input
func NewValidationError(message string) *AppError {
	return New(KindValidation, message, nil)
}

// NewConflictError creates an error for a uniqueness violation
func NewConflictError(message string) *AppError {
	return New(KindConflict, message, nil)
}

// NewAuthError creates an error for bad credentials or a missing session
func NewAuthError(message string) *AppError {
	return New(KindAuth, message, nil)
}

// NewNotFoundError creates an error for an unknown identifier
func NewNotFoundError(message string) *AppError {
	return New(KindNotFound, message, nil)
}

// NewNetworkError creates an error for an unreachable or failing remote API
func NewNetworkError(message string, cause error) *AppError {
	return New(KindNetwork, message, cause)
}

// NewInternalError wraps an unexpected failure such as a storage error
func NewInternalError(message string, cause error) *AppError {
	return New(KindInternal, message, cause)
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	if err == nil {
		return ""
	}
	return KindInternal
}

// Message returns the user-facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
