// Package regimen provides the in-memory per-user regimen session store.
package regimen

import (
	"log/slog"
	"sync"

	"github.com/avoronin/pillbot/internal/domain"
)

// Session holds one user's regimen together with the explicit dialogue state.
// The dialogue engine writes both during setup; the reminder scheduler only
// touches the quantity.
type Session struct {
	State   domain.DialogueState
	Regimen domain.Regimen
}

// Store manages regimen sessions keyed by user ID. State lives in memory for
// the process lifetime; regimens are not persisted across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Get returns a snapshot of the session for a user.
func (s *Store) Get(userID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Regimen returns a snapshot of the user's regimen.
func (s *Store) Regimen(userID string) (domain.Regimen, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return domain.Regimen{}, false
	}
	return sess.Regimen, true
}

// State returns the current dialogue state for a user. Absent sessions report
// StateIdle.
func (s *Store) State(userID string) domain.DialogueState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.State
	}
	return domain.StateIdle
}

// SetState updates the dialogue state for a user.
func (s *Store) SetState(userID string, state domain.DialogueState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).State = state
}

// Begin replaces any in-progress session with a fresh one awaiting the
// medicine name. Previously captured fields are discarded, never merged.
func (s *Store) Begin(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &Session{State: domain.StateAwaitingName}
	slog.Info("Regimen setup started", "user_id", userID)
}

// SetName records the medicine name.
func (s *Store) SetName(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).Regimen.Name = name
}

// SetFrequency records the daily intake frequency. Validation is the dialogue
// engine's responsibility, not the store's.
func (s *Store) SetFrequency(userID string, frequency int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).Regimen.FrequencyPerDay = frequency
}

// SetQuantity records the remaining dose count.
func (s *Store) SetQuantity(userID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := &s.ensure(userID).Regimen
	reg.QuantityRemain = quantity
	reg.QuantitySet = true
}

// DecrementQuantity reduces the remaining dose count by one, never below
// zero. It returns the post-decrement count and whether a decrement happened.
func (s *Store) DecrementQuantity(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || sess.Regimen.QuantityRemain <= 0 {
		return 0, false
	}
	sess.Regimen.QuantityRemain--
	return sess.Regimen.QuantityRemain, true
}

// Reset removes the user's session entirely.
func (s *Store) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		slog.Info("Regimen session reset", "user_id", userID)
	}
}

// ensure returns the session for a user, creating it if missing.
// Caller must hold the write lock.
func (s *Store) ensure(userID string) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{}
		s.sessions[userID] = sess
	}
	return sess
}
