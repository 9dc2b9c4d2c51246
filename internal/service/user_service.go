package service

import (
	"context"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// UserService provides user lookups for the assignment picker and profile.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns every user ordered by name
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser registers a user record with the given name and email
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// UpdateMe renames the user identified by userID
	UpdateMe(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("user not found", "user_id", userID)
			return nil, err
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, NewServiceError("user", "get", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by name
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, NewServiceError("user", "list", err)
	}
	return users, nil
}

// CreateUser registers a user record with the given name and email
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, NewServiceError("user", "create", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// UpdateMe renames the user identified by userID
func (s *UserServiceImpl) UpdateMe(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Rename(name); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to update user",
			"error", err,
			"user_id", userID)
		return nil, NewServiceError("user", "update", err)
	}

	s.logger.Info("user renamed", "user_id", userID)
	return user, nil
}
