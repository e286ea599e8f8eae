package core

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to callers alongside the message.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "DB_ERROR"
)

// Error is the domain error type. Every expected failure carries a
// human-readable message and one of the stable codes above.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports an input that fails a domain invariant.
func NewValidationError(message string) error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing entity for the given owner scope.
func NewNotFoundError(resource string) error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// NewStorageError wraps a backing-store failure.
func NewStorageError(message string, err error) error {
	return &Error{Code: CodeStorage, Message: message, Err: err}
}

// ErrorCode returns the stable code of err, or empty for non-domain errors.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return ErrorCode(err) == CodeValidation
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return ErrorCode(err) == CodeNotFound
}
