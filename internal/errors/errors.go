// Package errors provides structured error handling with user-visible reply mapping.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error for metrics and reply formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid command input.
	TypeValidation ErrorType = "validation"
	// TypePermission indicates a caller lacking the required role.
	TypePermission ErrorType = "permission"
	// TypeNotFound indicates a lookup with no data behind it.
	TypeNotFound ErrorType = "not_found"
	// TypeStorage indicates a failed ledger or settings store operation.
	TypeStorage ErrorType = "storage"
	// TypeInternal indicates any other server-side error.
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and cause.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text shown to the chat user. Storage and internal
// failures are never surfaced verbatim.
func (e *Error) UserMessage() string {
	switch e.Type {
	case TypeValidation, TypePermission, TypeNotFound:
		return e.Message
	default:
		return "Something went wrong, try again later."
	}
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// PermissionError creates a new permission error.
func PermissionError(message string) *Error {
	return &Error{Type: TypePermission, Message: message}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// StorageError creates a new storage error.
func StorageError(message string, cause error) *Error {
	return &Error{Type: TypeStorage, Message: message, Cause: cause}
}

// InternalError creates a new internal error.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal error", err)
}
