package domain

import (
	"time"
)

// User represents an addressable chat identity. Regimen state itself is kept
// in memory; only the identity row and the message journal are persisted.
type User struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Journal entry directions.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Journal entry kinds.
const (
	KindMessage  = "message"
	KindReminder = "reminder"
)

// JournalEntry is one persisted line of the per-user message journal.
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Direction string    `json:"direction"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
