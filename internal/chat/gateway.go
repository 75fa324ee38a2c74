// Package chat provides the WebSocket chat gateway between users and the bot.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Message is the JSON frame exchanged over the chat WebSocket.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Message frame types.
const (
	TypeMessage  = "message"
	TypeReminder = "reminder"
	TypeError    = "error"
)

// Gateway manages active WebSocket connections, one per user. A user opening
// a second connection replaces the first.
type Gateway struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewGateway creates a new connection gateway.
func NewGateway() *Gateway {
	return &Gateway{
		active: make(map[string]*websocket.Conn),
	}
}

// GetActive returns the active connection for a user, or nil.
func (g *Gateway) GetActive(userID string) *websocket.Conn {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active[userID]
}

// Register adds a new WebSocket connection for a user, closing any previous
// one.
func (g *Gateway) Register(userID string, conn *websocket.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.active[userID]; ok && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "connection replaced")
	}

	g.active[userID] = conn
	slog.Info("Chat connection registered", "user_id", userID)
}

// Unregister removes a WebSocket connection for a user. A stale unregister
// (the user already reconnected) is a no-op.
func (g *Gateway) Unregister(userID string, conn *websocket.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.active[userID]; ok && current == conn {
		delete(g.active, userID)
		slog.Info("Chat connection unregistered", "user_id", userID)
	}
}

// Send pushes a message frame to the user's active connection. Returns an
// error if the user has no connection.
func (g *Gateway) Send(ctx context.Context, userID string, msg Message) error {
	conn := g.GetActive(userID)
	if conn == nil {
		return fmt.Errorf("no active connection for user %s", userID)
	}
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		return fmt.Errorf("write chat message: %w", err)
	}
	return nil
}

// CloseUser forcefully terminates the user's active connection.
func (g *Gateway) CloseUser(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if conn, ok := g.active[userID]; ok {
		_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
		delete(g.active, userID)
		slog.Info("Chat connection closed", "user_id", userID)
	}
}
