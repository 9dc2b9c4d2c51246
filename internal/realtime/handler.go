package realtime

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/service/auth"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket connections registered with a Hub.
type Handler struct {
	hub        *Hub
	jwtService auth.JWTService
	cfg        config.RealtimeConfig
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates the websocket endpoint. jwtService may be nil, in which
// case every connection is anonymous.
func NewHandler(
	hub *Hub,
	jwtService auth.JWTService,
	cfg config.RealtimeConfig,
	log *slog.Logger,
) *Handler {
	if hub == nil {
		panic("hub cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{
		hub:        hub,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     log.With(slog.String("component", "realtime_handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := h.identify(w, r, log)
	if !ok {
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := newConn(ws, h.hub, identity, h.cfg, log)
	if err := h.hub.register(c); err != nil {
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down"))
		_ = ws.Close()
		return
	}

	log.Debug("websocket connected",
		"conn_id", c.id.String(),
		"authenticated", identity != uuid.Nil)

	go c.writePump()
	go c.readPump()
}

// identify validates an optional bearer token. A present but invalid token
// is rejected with 401.
func (h *Handler) identify(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
	}
	if token == "" || h.jwtService == nil {
		return uuid.Nil, true
	}

	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		log.Debug("rejected websocket token", "error", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return claims.UserID, true
}
