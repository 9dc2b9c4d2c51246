package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Abhi005shek/TaskManager/internal/api/shared"
	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/platform/breaker"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/Abhi005shek/TaskManager/internal/service/auth"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// A failed notification wraps store errors that would otherwise map to 4xx.
	case errors.Is(err, service.ErrNotificationFailed),
		errors.Is(err, breaker.ErrUnavailable):
		return http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrNotificationFailed):
		return "Task saved but the assignee could not be notified"

	case errors.Is(err, breaker.ErrUnavailable):
		return "Notifications are temporarily unavailable"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Not authenticated"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotificationNotFound):
		return "Notification not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrAssigneeNotFound):
		return "Assignee does not exist"

	case errors.Is(err, service.ErrEmptyPatch):
		return "No fields to update"

	case errors.Is(err, service.ErrInvalidScope):
		return "scope must be all or mine"

	case errors.Is(err, domain.ErrValidation):
		return SanitizeValidationError(err)

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, store.ErrForeignKeyViolation):
		return "Referenced entity does not exist"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	if err == nil {
		return "Validation error"
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Domain validation errors carry messages written for clients.
	if errors.Is(err, domain.ErrValidation) {
		msg := err.Error()
		if rest, ok := strings.CutPrefix(msg, domain.ErrValidation.Error()+": "); ok {
			msg = rest
		}
		if msg != "" {
			return msg
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid UUID"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. An empty
// fallbackMessage uses GetSafeErrorMessage.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := fallbackMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	// Behind the auth middleware a 401 means the request context lost its
	// user, which is worth surfacing.
	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
