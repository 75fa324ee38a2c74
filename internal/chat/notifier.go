package chat

import (
	"context"
	"log/slog"

	"github.com/avoronin/pillbot/internal/domain"
	"github.com/avoronin/pillbot/internal/store"
)

// Notifier delivers scheduler notifications over the chat gateway and
// records them in the message journal. Delivery to a disconnected user is
// not an error: the entry stays in the journal for the history endpoint.
type Notifier struct {
	gw   *Gateway
	repo store.Repository
}

// NewNotifier creates a gateway-backed notifier.
func NewNotifier(gw *Gateway, repo store.Repository) *Notifier {
	return &Notifier{gw: gw, repo: repo}
}

// Notify sends one reminder text to a user.
func (n *Notifier) Notify(ctx context.Context, userID, text string) {
	if err := n.repo.AppendJournal(ctx, &domain.JournalEntry{
		UserID:    userID,
		Direction: domain.DirectionOutbound,
		Kind:      domain.KindReminder,
		Text:      text,
	}); err != nil {
		slog.Warn("Failed to journal reminder", "user_id", userID, "error", err)
	}

	if err := n.gw.Send(ctx, userID, Message{Type: TypeReminder, Text: text}); err != nil {
		slog.Info("Reminder not delivered, user offline", "user_id", userID)
	}
}
