package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-specific errors below wrap it so callers can test for either.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// Field validation errors.
var (
	ErrEmptyTitle       = fmtValidation("title cannot be empty")
	ErrTitleTooLong     = fmtValidation("title must be at most 100 characters long")
	ErrEmptyDescription = fmtValidation("description cannot be empty")
	ErrEmptyDueDate     = fmtValidation("due date is required")
	ErrInvalidPriority  = fmtValidation("invalid task priority")
	ErrInvalidStatus    = fmtValidation("invalid task status")
	ErrEmptyCreatorID   = fmtValidation("creator ID cannot be empty")
	ErrEmptyUserID      = fmtValidation("user ID cannot be empty")
	ErrEmptyTaskID      = fmtValidation("task ID cannot be empty")
	ErrEmptyMessage     = fmtValidation("message cannot be empty")
	ErrEmptyName        = fmtValidation("name cannot be empty")
	ErrNameTooLong      = fmtValidation("name must be at most 100 characters long")
	ErrEmptyEmail       = fmtValidation("email cannot be empty")
	ErrInvalidEmail     = fmtValidation("invalid email format")
)

// validationError keeps the field message as its text while matching
// ErrValidation under errors.Is.
type validationError struct {
	msg string
}

func fmtValidation(msg string) error {
	return &validationError{msg: msg}
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
