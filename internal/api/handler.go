// Package api provides HTTP handlers for the pillbot API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/avoronin/pillbot/internal/regimen"
	"github.com/avoronin/pillbot/internal/status"
	"github.com/avoronin/pillbot/internal/store"
)

// Handler provides common handler utilities.
type Handler struct {
	repo     store.Repository
	sessions *regimen.Store
	reporter *status.Reporter
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository, sessions *regimen.Store, reporter *status.Reporter) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
		reporter: reporter,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
