// Package breaker guards notification persistence with a circuit breaker so
// a failing database fails fast instead of stalling every assignment.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the breaker is open or probing.
var ErrUnavailable = errors.New("notification store unavailable")

// NotificationStore decorates a store.NotificationStore with a circuit breaker.
type NotificationStore struct {
	next   store.NotificationStore
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

var _ store.NotificationStore = (*NotificationStore)(nil)

// NewNotificationStore wraps next. The breaker opens after
// cfg.BreakerMaxFailures consecutive infrastructure failures and half-opens
// after cfg.BreakerTimeoutSeconds.
func NewNotificationStore(
	next store.NotificationStore,
	cfg config.NotifierConfig,
	logger *slog.Logger,
) *NotificationStore {
	if next == nil {
		panic("next cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "notification_breaker"))

	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notification-store",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.BreakerTimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
		IsSuccessful: isSuccessful,
	})

	return &NotificationStore{next: next, cb: cb, logger: log}
}

// State reports the breaker state.
func (s *NotificationStore) State() gobreaker.State {
	return s.cb.State()
}

// isSuccessful counts caller mistakes as successes so that only
// infrastructure failures trip the breaker.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, context.Canceled)
}

func (s *NotificationStore) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	res, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn("notification store call rejected", "operation", op, "state", s.cb.State().String())
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return res, err
}

// Create implements store.NotificationStore.
func (s *NotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	_, err := s.execute("create", func() (interface{}, error) {
		return nil, s.next.Create(ctx, n)
	})
	return err
}

// GetByID implements store.NotificationStore.
func (s *NotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	res, err := s.execute("get_by_id", func() (interface{}, error) {
		return s.next.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Notification), nil
}

// ListUnread implements store.NotificationStore.
func (s *NotificationStore) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	res, err := s.execute("list_unread", func() (interface{}, error) {
		return s.next.ListUnread(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Notification), nil
}

// MarkRead implements store.NotificationStore.
func (s *NotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	res, err := s.execute("mark_read", func() (interface{}, error) {
		return s.next.MarkRead(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Notification), nil
}

// MarkAllRead implements store.NotificationStore.
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.execute("mark_all_read", func() (interface{}, error) {
		return s.next.MarkAllRead(ctx, userID)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}
