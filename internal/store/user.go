package store

import (
	"context"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update saves the user's name and email.
	// Returns ErrUserNotFound if the user does not exist, ErrEmailExists if
	// the email belongs to someone else.
	Update(ctx context.Context, user *domain.User) error

	// List returns all users ordered by name.
	List(ctx context.Context) ([]domain.User, error)
}
