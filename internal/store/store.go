// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/avoronin/pillbot/internal/domain"
)

// Repository defines the interface for persisting user identity and the
// message journal.
type Repository interface {
	// GetUser retrieves a user by their user ID. Returns nil when absent.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// AppendJournal appends one message journal entry for a user.
	AppendJournal(ctx context.Context, entry *domain.JournalEntry) error

	// RecentJournal returns up to limit journal entries for a user, newest
	// first.
	RecentJournal(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
