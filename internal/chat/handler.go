package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avoronin/pillbot/internal/identity"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Responder produces the bot's reply for one inbound user message.
type Responder interface {
	Handle(ctx context.Context, userID, text string) string
}

// Handler upgrades chat WebSocket connections and pumps inbound messages
// through the responder.
type Handler struct {
	gw            *Gateway
	responder     Responder
	allowedOrigin string
	isDev         bool
}

// NewHandler creates a new chat WebSocket handler.
func NewHandler(gw *Gateway, responder Responder, allowedOrigin string, isDev bool) *Handler {
	return &Handler{
		gw:            gw,
		responder:     responder,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	slog.Info("Chat connection request", "user_id", userID, "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	h.gw.Register(userID, ws)
	defer h.gw.Unregister(userID, ws)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		var msg Message
		if err := wsjson.Read(ctx, ws, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return
			}
			slog.Debug("Chat read error", "error", err, "user_id", userID)
			return
		}

		if msg.Type != TypeMessage || strings.TrimSpace(msg.Text) == "" {
			if err := wsjson.Write(ctx, ws, Message{Type: TypeError, Text: "empty message"}); err != nil {
				return
			}
			continue
		}

		reply := h.responder.Handle(ctx, userID, msg.Text)
		if err := wsjson.Write(ctx, ws, Message{Type: TypeMessage, Text: reply}); err != nil {
			slog.Debug("Chat write error", "error", err, "user_id", userID)
			return
		}
	}
}

// checkOrigin mirrors the allowed-origin policy: in development any origin is
// accepted, otherwise only the configured frontend origin.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.allowedOrigin != "" && strings.HasPrefix(origin, h.allowedOrigin)
}
