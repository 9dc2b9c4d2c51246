// Package mocks provides hand-written test doubles for the store, auth and
// event publishing interfaces.
//
// Store mocks behave as in-memory stores until a function field overrides a
// method, so service and handler tests can exercise real flows and inject a
// single failure:
//
//	tasks := mocks.NewMockTaskStore()
//	notifications := mocks.NewMockNotificationStore(tasks)
//	notifications.CreateFn = func(ctx context.Context, n *domain.Notification) error {
//	    return errors.New("connection reset")
//	}
//
// MockPublisher records every emission for later assertions on rooms and
// events.
package mocks
