package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/Abhi005shek/TaskManager/internal/events"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
)

var (
	// ErrHubClosed is returned when registering with a closed hub.
	ErrHubClosed = errors.New("realtime hub is closed")

	errNotRegistered = errors.New("connection is not registered")
)

// Hub owns the set of live connections and the room table.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*Conn]struct{}
	rooms  map[string]map[*Conn]struct{}
	closed bool
	logger *slog.Logger
}

var _ events.Publisher = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		conns:  make(map[*Conn]struct{}),
		rooms:  make(map[string]map[*Conn]struct{}),
		logger: log.With(slog.String("component", "realtime_hub")),
	}
}

func (h *Hub) register(c *Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}
	h.conns[c] = struct{}{}
	c.setState(StateConnected)
	h.logger.Debug("connection registered", "conn_id", c.id.String(), "connections", len(h.conns))
	return nil
}

// join moves c into room, leaving any room it was in.
func (h *Hub) join(c *Conn, room string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; !ok {
		return errNotRegistered
	}
	if c.room == room {
		return nil
	}
	h.leaveLocked(c)

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Conn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.room = room
	c.setState(StateJoined)

	h.logger.Debug("connection joined room", "conn_id", c.id.String(), "room", room)
	return nil
}

// unregister removes c from the hub and stops its writer. It is safe to
// call more than once.
func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	_, ok := h.conns[c]
	if ok {
		h.leaveLocked(c)
		delete(h.conns, c)
	}
	remaining := len(h.conns)
	h.mu.Unlock()

	c.setState(StateDisconnected)
	c.send.Close()
	if ok {
		h.logger.Debug("connection unregistered", "conn_id", c.id.String(), "connections", remaining)
	}
}

func (h *Hub) leaveLocked(c *Conn) {
	if c.room == "" {
		return
	}
	if members, ok := h.rooms[c.room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// BroadcastGlobal implements events.Publisher.
func (h *Hub) BroadcastGlobal(ctx context.Context, event string, payload any) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(ctx, targets, "", event, payload)
}

// EmitToRoom implements events.Publisher. An empty room is a no-op.
func (h *Hub) EmitToRoom(ctx context.Context, userID string, event string, payload any) {
	h.mu.RLock()
	members := h.rooms[userID]
	targets := make([]*Conn, 0, len(members))
	for c := range members {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(ctx, targets, userID, event, payload)
}

func (h *Hub) deliver(ctx context.Context, targets []*Conn, room, event string, payload any) {
	log := logger.FromContextOrDefault(ctx, h.logger)
	if len(targets) == 0 {
		log.Debug("no connections for event", "event", event, "room", room)
		return
	}

	env, err := events.NewEnvelope(event, payload)
	if err != nil {
		log.Error("failed to encode event", "event", event, "error", err)
		return
	}
	frame, err := json.Marshal(env)
	if err != nil {
		log.Error("failed to encode envelope", "event", event, "error", err)
		return
	}

	dropped := 0
	for _, c := range targets {
		if err := c.send.Enqueue(frame); err != nil {
			if !errors.Is(err, ErrQueueClosed) {
				dropped++
				log.Warn("dropping event for slow connection",
					"event", event,
					"conn_id", c.id.String(),
					"error", err)
			}
		}
	}

	log.Debug("event delivered",
		"event", event,
		"room", room,
		"recipients", len(targets)-dropped,
		"dropped", dropped)
}

// RoomSize returns how many connections are joined to room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every connection and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.unregister(c)
	}
	h.logger.Info("realtime hub closed", "connections_closed", len(conns))
}
