package util

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a duplicate unique key on insert.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

// NotFound wraps ErrNotFound with the missing entity name, e.g. "wallet not found".
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Unauthorized returns an error matching ErrUnauthorized that reads as msg.
func Unauthorized(msg string) error {
	return &kindError{msg: msg, kind: ErrUnauthorized}
}

// Forbidden returns an error matching ErrForbidden that reads as msg.
func Forbidden(msg string) error {
	return &kindError{msg: msg, kind: ErrForbidden}
}
