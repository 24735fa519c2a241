// Package apperrors defines the error kinds shared by the services and the
// HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError is returned when input fails a declared rule
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError is returned when an id does not resolve to an entity
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// StorageError wraps a persistence failure that is not a declared validation rule
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConflictError is returned when an operation is not allowed in the entity's current state
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// IsStorage reports whether err is or wraps a StorageError
func IsStorage(err error) bool {
	var v *StorageError
	return errors.As(err, &v)
}

// IsConflict reports whether err is or wraps a ConflictError
func IsConflict(err error) bool {
	var v *ConflictError
	return errors.As(err, &v)
}

// AsValidation extracts the ValidationError from err
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
