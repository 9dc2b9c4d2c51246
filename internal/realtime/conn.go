package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// State is the lifecycle position of a connection.
type State int32

// Connection states. Disconnected is terminal.
const (
	StateConnected State = iota
	StateJoined
	StateDisconnected
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Conn is one client websocket registered with a Hub.
type Conn struct {
	id   uuid.UUID
	ws   *websocket.Conn
	hub  *Hub
	send *sendQueue
	cfg  config.RealtimeConfig

	// identity is the authenticated user, or uuid.Nil for anonymous clients.
	identity uuid.UUID
	// room is guarded by hub.mu.
	room string

	state  atomic.Int32
	logger *slog.Logger
}

func newConn(
	ws *websocket.Conn,
	hub *Hub,
	identity uuid.UUID,
	cfg config.RealtimeConfig,
	logger *slog.Logger,
) *Conn {
	id := uuid.New()
	return &Conn{
		id:       id,
		ws:       ws,
		hub:      hub,
		send:     newSendQueue(cfg.SendBuffer),
		cfg:      cfg,
		identity: identity,
		logger:   logger.With("conn_id", id.String()),
	}
}

// ID returns the connection id.
func (c *Conn) ID() uuid.UUID { return c.id }

// State returns the current lifecycle state.
func (c *Conn) State() State { return State(c.state.Load()) }

func (c *Conn) setState(s State) { c.state.Store(int32(s)) }

// readPump handles client messages until the socket fails, then
// unregisters the connection.
func (c *Conn) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(c.cfg.MaxMessageBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait()))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait()))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		c.handleMessage(data)
	}
}

// writePump drains the send queue and keeps the socket alive with pings.
// It returns once the queue is closed or a write fails.
func (c *Conn) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval())
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send.Chan():
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait()))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait()))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Conn) handleMessage(data []byte) {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
		c.sendError("malformed message")
		return
	}

	switch env.Event {
	case events.JoinUserRoom:
		c.handleJoin(&env)
	default:
		c.logger.Debug("ignoring client event", "event", env.Event)
	}
}

func (c *Conn) handleJoin(env *events.Envelope) {
	var room string
	if err := env.UnmarshalData(&room); err != nil {
		c.sendError("joinUserRoom expects a user id string")
		return
	}
	userID, err := uuid.Parse(room)
	if err != nil || userID == uuid.Nil {
		c.sendError("joinUserRoom expects a user id string")
		return
	}
	room = userID.String()

	switch {
	case c.identity == userID:
	case c.identity == uuid.Nil && c.cfg.EnforceRoomIdentity:
		c.logger.Warn("rejected anonymous room join", "room", room)
		c.sendError("authentication required to join a room")
		return
	case c.identity == uuid.Nil:
		c.logger.Debug("anonymous room join", "room", room)
	case c.cfg.EnforceRoomIdentity:
		c.logger.Warn("rejected room join for another identity",
			"room", room,
			"identity", c.identity.String())
		c.sendError("cannot join another user's room")
		return
	default:
		c.logger.Warn("room join does not match connection identity",
			"room", room,
			"identity", c.identity.String())
	}

	if err := c.hub.join(c, room); err != nil {
		c.logger.Debug("room join ignored", "room", room, "error", err)
	}
}

func (c *Conn) sendError(message string) {
	env, err := events.NewEnvelope(events.Error, events.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	frame, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := c.send.Enqueue(frame); err != nil && !errors.Is(err, ErrQueueClosed) {
		c.logger.Warn("dropping error event", "error", err)
	}
}
