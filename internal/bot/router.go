// Package bot routes inbound user text to commands or the active dialogue.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avoronin/pillbot/internal/dialogue"
	"github.com/avoronin/pillbot/internal/domain"
	"github.com/avoronin/pillbot/internal/regimen"
	"github.com/avoronin/pillbot/internal/status"
	"github.com/avoronin/pillbot/internal/store"
)

const (
	msgHelp = "Доступные команды:\n" +
		"/start — настроить напоминания о приеме лекарства\n" +
		"/status — текущие настройки\n" +
		"/cancel — отменить настройку\n" +
		"/delete — удалить лекарство\n" +
		"/help — эта справка"
	msgUnknown  = "Я вас не понял. Введите /help, чтобы увидеть список команд."
	msgNoDelete = "У вас нет настроенного лекарства. Введите /start, чтобы начать настройку."
)

// Router dispatches one inbound message per call. Commands always win over an
// in-progress dialogue step; anything else goes to the dialogue engine while
// a setup is active.
type Router struct {
	engine   *dialogue.Engine
	reporter *status.Reporter
	store    *regimen.Store
	repo     store.Repository
}

// NewRouter creates a message router. repo may be nil to disable journaling.
func NewRouter(engine *dialogue.Engine, reporter *status.Reporter, sessions *regimen.Store, repo store.Repository) *Router {
	return &Router{
		engine:   engine,
		reporter: reporter,
		store:    sessions,
		repo:     repo,
	}
}

// Handle processes one user message and returns the reply text. Both the
// inbound message and the reply are appended to the user's journal.
func (r *Router) Handle(ctx context.Context, userID, text string) string {
	r.journal(ctx, userID, domain.DirectionInbound, text)
	reply := r.dispatch(ctx, userID, text)
	r.journal(ctx, userID, domain.DirectionOutbound, reply)
	return reply
}

func (r *Router) dispatch(ctx context.Context, userID, text string) string {
	command := strings.ToLower(strings.TrimSpace(text))

	switch command {
	case "/start":
		return r.engine.Start(userID)
	case "/status":
		return r.reporter.Report(userID)
	case "/cancel":
		return r.engine.Cancel(userID)
	case "/delete":
		return r.deleteRegimen(userID)
	case "/help":
		return msgHelp
	}

	if r.engine.Active(userID) {
		return r.engine.Handle(ctx, userID, text)
	}

	slog.Debug("Unroutable message", "user_id", userID)
	return msgUnknown
}

func (r *Router) journal(ctx context.Context, userID, direction, text string) {
	if r.repo == nil {
		return
	}
	if err := r.repo.AppendJournal(ctx, &domain.JournalEntry{
		UserID:    userID,
		Direction: direction,
		Kind:      domain.KindMessage,
		Text:      text,
	}); err != nil {
		slog.Warn("Failed to journal message", "user_id", userID, "error", err)
	}
}

// deleteRegimen removes the user's stored regimen. Armed reminder tasks are
// not revoked; they will find no regimen when they fire.
func (r *Router) deleteRegimen(userID string) string {
	reg, ok := r.store.Regimen(userID)
	if !ok || !reg.HasName() {
		return msgNoDelete
	}
	r.store.Reset(userID)
	slog.Info("Regimen deleted", "user_id", userID, "medicine", reg.Name)
	return fmt.Sprintf("Лекарство '%s' удалено. Чтобы настроить новое, введите /start.", reg.Name)
}
