package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/avoronin/pillbot/internal/identity"
	"github.com/go-chi/chi/v5"
)

// Responder produces the bot's reply for one inbound user message.
type Responder interface {
	Handle(ctx context.Context, userID, text string) string
}

// BotHandler exposes the bot over plain HTTP: a synchronous message turn
// plus read-only status and history endpoints.
type BotHandler struct {
	*Handler
	responder Responder
}

// NewBotHandler creates a new bot API handler.
func NewBotHandler(base *Handler, responder Responder) *BotHandler {
	return &BotHandler{Handler: base, responder: responder}
}

// RegisterRoutes registers bot API routes.
func (h *BotHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.GetMe)
		r.Get("/status", h.GetStatus)
		r.Get("/history", h.GetHistory)
		r.Post("/message", h.PostMessage)
	})
}

// GetMe returns the current user's identity and dialogue state.
func (h *BotHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		Error(w, http.StatusUnauthorized, "user not found")
		return
	}

	reg, _ := h.sessions.Regimen(userID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"user_id":        user.UserID,
		"username":       user.Username,
		"dialogue_state": h.sessions.State(userID).String(),
		"configured":     reg.Configured(),
	})
}

// GetStatus returns the formatted regimen status snapshot.
func (h *BotHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reg, _ := h.sessions.Regimen(userID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":  h.reporter.Report(userID),
		"regimen": reg,
	})
}

// GetHistory returns the user's recent message journal, newest first.
func (h *BotHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.repo.RecentJournal(r.Context(), userID, limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

type messageRequest struct {
	Text string `json:"text"`
}

// PostMessage runs one synchronous dialogue turn and returns the reply.
func (h *BotHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		Error(w, http.StatusBadRequest, "text is required")
		return
	}

	reply := h.responder.Handle(r.Context(), userID, req.Text)
	JSON(w, http.StatusOK, map[string]string{"reply": reply})
}
