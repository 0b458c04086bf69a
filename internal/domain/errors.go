package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a folder or document was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConflictError represents a name collision inside a directory (or a duplicate
// document path anywhere in the tree).
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // folder or document
	FolderPath   string // Directory where the collision happened
	Name         string // Colliding name or document path
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PathUnresolvedError is returned when an intermediate segment of a virtual
// folder path does not exist. Resolved holds the deepest folder that did.
type PathUnresolvedError struct {
	Path     string
	Resolved string
}

func (e *PathUnresolvedError) Error() string {
	return fmt.Sprintf("folder path %q does not exist (resolved up to %q)", e.Path, e.Resolved)
}

// StatusCode implements the HTTPError interface
func (e *PathUnresolvedError) StatusCode() int {
	return http.StatusNotFound
}

// Is allows errors.Is() to match against ErrNotFound
func (e *PathUnresolvedError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound builds a NotFoundError with a formatted message
func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// NewValidation builds a ValidationError with a formatted message
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
