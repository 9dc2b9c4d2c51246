// Package service implements the task, notification and user use cases on
// top of the store interfaces and pushes the resulting events through an
// events.Publisher.
package service

import (
	"errors"
	"fmt"

	"github.com/Abhi005shek/TaskManager/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrAssigneeNotFound indicates assignedToId does not reference an existing user.
	// It is a validation error (HTTP 400).
	ErrAssigneeNotFound = fmt.Errorf("%w: assignee does not exist", domain.ErrValidation)

	// ErrEmptyPatch indicates an update request that changes nothing.
	ErrEmptyPatch = fmt.Errorf("%w: no fields to update", domain.ErrValidation)

	// ErrInvalidScope indicates a task listing scope other than all or mine.
	ErrInvalidScope = fmt.Errorf("%w: scope must be all or mine", domain.ErrValidation)

	// ErrNotificationFailed indicates the assignment notification could not be
	// persisted. The task mutation that triggered it has already been stored.
	ErrNotificationFailed = errors.New("failed to persist assignment notification")
)

// ServiceError wraps an error with the service and operation that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) error {
	return &ServiceError{Service: service, Op: op, Err: err}
}
