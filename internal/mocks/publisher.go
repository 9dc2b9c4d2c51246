package mocks

import (
	"context"
	"sync"

	"github.com/Abhi005shek/TaskManager/internal/events"
)

// Emission is one event recorded by MockPublisher. Room is empty for
// global broadcasts.
type Emission struct {
	Room    string
	Event   string
	Payload any
}

// MockPublisher implements events.Publisher by recording every emission.
type MockPublisher struct {
	BroadcastGlobalFn func(ctx context.Context, event string, payload any)
	EmitToRoomFn      func(ctx context.Context, userID, event string, payload any)

	mu        sync.Mutex
	emissions []Emission
}

var _ events.Publisher = (*MockPublisher)(nil)

// NewMockPublisher creates an empty recording publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// BroadcastGlobal implements the events.Publisher interface
func (m *MockPublisher) BroadcastGlobal(ctx context.Context, event string, payload any) {
	m.record(Emission{Event: event, Payload: payload})
	if m.BroadcastGlobalFn != nil {
		m.BroadcastGlobalFn(ctx, event, payload)
	}
}

// EmitToRoom implements the events.Publisher interface
func (m *MockPublisher) EmitToRoom(ctx context.Context, userID, event string, payload any) {
	m.record(Emission{Room: userID, Event: event, Payload: payload})
	if m.EmitToRoomFn != nil {
		m.EmitToRoomFn(ctx, userID, event, payload)
	}
}

func (m *MockPublisher) record(e Emission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emissions = append(m.emissions, e)
}

// Emissions returns every recorded emission in order.
func (m *MockPublisher) Emissions() []Emission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Emission(nil), m.emissions...)
}

// Global returns the broadcasts of event.
func (m *MockPublisher) Global(event string) []Emission {
	return m.filter(func(e Emission) bool { return e.Room == "" && e.Event == event })
}

// Room returns the emissions of event to room.
func (m *MockPublisher) Room(room, event string) []Emission {
	return m.filter(func(e Emission) bool { return e.Room == room && e.Event == event })
}

// RoomEvents returns every emission to room.
func (m *MockPublisher) RoomEvents(room string) []Emission {
	return m.filter(func(e Emission) bool { return e.Room == room })
}

// Reset forgets all recorded emissions.
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emissions = nil
}

func (m *MockPublisher) filter(keep func(Emission) bool) []Emission {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Emission
	for _, e := range m.emissions {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
