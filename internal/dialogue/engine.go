// Package dialogue implements the regimen setup conversation as an explicit
// finite-state machine over the regimen store.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/avoronin/pillbot/internal/domain"
	"github.com/avoronin/pillbot/internal/regimen"
)

// Armer registers reminder tasks for a user's completed regimen.
type Armer interface {
	Arm(ctx context.Context, userID string) error
}

// User-visible dialogue messages.
const (
	msgGreeting = "Здравствуйте! Я помогу вам не забывать о приеме лекарств.\n\n" +
		"Давайте начнем с указания лекарства. Напишите название лекарства:"
	msgNameEmpty        = "Пожалуйста, напишите название лекарства."
	msgFrequencyInvalid = "Пожалуйста, введите корректное число (от 1 до 10)."
	msgQuantityInvalid  = "Пожалуйста, введите положительное число."
	msgCancelled        = "Настройка отменена. Вы можете начать заново, введя команду /start."
)

// Engine advances the setup dialogue one user message at a time. Each step
// either moves exactly one state forward or stays in place with a re-prompt;
// captured fields are never dropped by an invalid input.
type Engine struct {
	store *regimen.Store
	armer Armer
}

// NewEngine creates a dialogue engine backed by the given store. Completing
// the final step arms the scheduler as a side effect of the transition.
func NewEngine(store *regimen.Store, armer Armer) *Engine {
	return &Engine{
		store: store,
		armer: armer,
	}
}

// Active returns true if a setup dialogue is in progress for the user.
func (e *Engine) Active(userID string) bool {
	return e.store.State(userID) != domain.StateIdle
}

// Start begins a fresh setup dialogue, discarding any in-progress state for
// the user, and returns the greeting prompt.
func (e *Engine) Start(userID string) string {
	e.store.Begin(userID)
	return msgGreeting
}

// Cancel discards the in-progress dialogue and returns the acknowledgement.
// Previously armed reminder timers are not revoked.
func (e *Engine) Cancel(userID string) string {
	e.store.Reset(userID)
	slog.Info("Regimen setup cancelled", "user_id", userID)
	return msgCancelled
}

// Handle processes one user message against the current dialogue state and
// returns the reply text. Malformed numeric input is a recoverable validation
// failure: the user is re-prompted and no state changes.
func (e *Engine) Handle(ctx context.Context, userID, text string) string {
	text = strings.TrimSpace(text)

	switch e.store.State(userID) {
	case domain.StateAwaitingName:
		return e.handleName(userID, text)
	case domain.StateAwaitingFrequency:
		return e.handleFrequency(userID, text)
	case domain.StateAwaitingQuantity:
		return e.handleQuantity(ctx, userID, text)
	default:
		// No dialogue in progress; the router should not have sent us here.
		slog.Warn("Dialogue message with no active setup", "user_id", userID)
		return msgCancelled
	}
}

func (e *Engine) handleName(userID, text string) string {
	if text == "" {
		return msgNameEmpty
	}
	e.store.SetName(userID, text)
	e.store.SetState(userID, domain.StateAwaitingFrequency)
	return fmt.Sprintf("Отлично! Сколько раз в день вы принимаете '%s'?\n"+
		"Например: 1, 2 или 3 раза в день.", text)
}

func (e *Engine) handleFrequency(userID, text string) string {
	frequency, err := strconv.Atoi(text)
	if err != nil || frequency < domain.MinFrequencyPerDay || frequency > domain.MaxFrequencyPerDay {
		return msgFrequencyInvalid
	}
	e.store.SetFrequency(userID, frequency)
	e.store.SetState(userID, domain.StateAwaitingQuantity)
	return fmt.Sprintf("Хорошо! Вы принимаете лекарство %d раз(а) в день.\n"+
		"Теперь напишите, сколько доз лекарства у вас осталось.", frequency)
}

func (e *Engine) handleQuantity(ctx context.Context, userID, text string) string {
	quantity, err := strconv.Atoi(text)
	if err != nil || quantity <= 0 {
		return msgQuantityInvalid
	}
	e.store.SetQuantity(userID, quantity)
	e.store.SetState(userID, domain.StateIdle)

	// Arming is part of completing this transition, not a separate step.
	if err := e.armer.Arm(ctx, userID); err != nil {
		slog.Error("Failed to arm reminders", "user_id", userID, "error", err)
	}

	return fmt.Sprintf("Вы указали, что у вас осталось %d доз лекарства.\n"+
		"Я буду напоминать вам о приеме и сообщу, когда запасы будут подходить к концу.\n\n"+
		"Напоминания настроены! Чтобы посмотреть текущие настройки, введите /status.", quantity)
}
