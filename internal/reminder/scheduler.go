// Package reminder schedules and fires time-delayed intake reminders.
package reminder

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avoronin/pillbot/internal/regimen"
)

// Notifier delivers an outbound plain-text notification to a user.
type Notifier interface {
	Notify(ctx context.Context, userID, text string)
}

// fallbackMedicineName is used when a reminder fires for a regimen whose name
// was never captured.
const fallbackMedicineName = "ваше лекарство"

// Offsets returns the hour marks at which reminders fire for a daily
// frequency: floor(24/f)*i for i in 0..f-1. For non-divisor frequencies this
// leaves a gap before midnight (f=5 gives 0,4,8,12,16); the uneven spread is
// kept as-is for compatibility with the original schedule.
func Offsets(frequency int) []int {
	if frequency < 1 {
		return nil
	}
	step := 24 / frequency
	offsets := make([]int, frequency)
	for i := range offsets {
		offsets[i] = step * i
	}
	return offsets
}

// Scheduler computes fire times from a user's regimen and runs them as
// one-shot tasks on a delay queue drained by a single worker goroutine.
// Tasks are bound to the user ID, not to a copy of the regimen, so each
// firing observes decrements made by earlier ones.
//
// Once a regimen's offsets are exhausted no further reminders fire; there is
// no re-arming for subsequent days. Re-running setup does not revoke tasks
// armed earlier.
type Scheduler struct {
	store    *regimen.Store
	notifier Notifier
	hour     time.Duration

	mu    sync.Mutex
	queue taskQueue
	seq   uint64
	wake  chan struct{}
}

// NewScheduler creates a scheduler over the given store. hour is the length
// of one schedule hour; pass 0 for the real time.Hour. Shorter values
// compress the 24-hour reminder day for development and tests.
func NewScheduler(store *regimen.Store, notifier Notifier, hour time.Duration) *Scheduler {
	if hour <= 0 {
		hour = time.Hour
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		hour:     hour,
		wake:     make(chan struct{}, 1),
	}
}

// Arm computes the fire offsets for the user's completed regimen and
// registers one task per offset, counted from now.
func (s *Scheduler) Arm(ctx context.Context, userID string) error {
	reg, ok := s.store.Regimen(userID)
	if !ok {
		return fmt.Errorf("arm reminders: no regimen for user %s", userID)
	}
	if !reg.Configured() {
		return fmt.Errorf("arm reminders: regimen for user %s is incomplete", userID)
	}

	offsets := Offsets(reg.FrequencyPerDay)
	now := time.Now()

	s.mu.Lock()
	for _, hours := range offsets {
		s.seq++
		heap.Push(&s.queue, &task{
			fireAt: now.Add(time.Duration(hours) * s.hour),
			seq:    s.seq,
			userID: userID,
		})
	}
	s.mu.Unlock()

	slog.Info("Reminders armed",
		"user_id", userID,
		"medicine", reg.Name,
		"count", len(offsets))

	// Nudge the worker in case the new head fires sooner than it planned.
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Start runs the worker goroutine until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	slog.Info("Reminder worker started", "hour", s.hour)

	for {
		s.mu.Lock()
		var wait time.Duration
		hasNext := len(s.queue) > 0
		if hasNext {
			wait = time.Until(s.queue[0].fireAt)
		}
		s.mu.Unlock()

		if hasNext && wait <= 0 {
			s.fireNext(ctx)
			continue
		}

		if !hasNext {
			select {
			case <-ctx.Done():
				slog.Info("Reminder worker shutting down", "reason", ctx.Err())
				return
			case <-s.wake:
			}
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Reminder worker shutting down", "reason", ctx.Err())
			return
		case <-s.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// fireNext pops the due head of the queue and executes its firing.
func (s *Scheduler) fireNext(ctx context.Context) {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}
	t := heap.Pop(&s.queue).(*task)
	s.mu.Unlock()

	s.fire(ctx, t.userID)
}

// fire executes one reminder: read the current quantity, warn if the stock
// is exhausted, otherwise decrement and notify with the new count.
func (s *Scheduler) fire(ctx context.Context, userID string) {
	reg, ok := s.store.Regimen(userID)
	if !ok {
		slog.Warn("Reminder fired for missing regimen", "user_id", userID)
		return
	}

	name := reg.Name
	if name == "" {
		name = fallbackMedicineName
	}

	if reg.QuantityRemain <= 0 {
		slog.Info("Reminder fired with empty stock", "user_id", userID, "medicine", name)
		s.notifier.Notify(ctx, userID, fmt.Sprintf(
			"Запасы '%s' закончились! Пожалуйста, купите новую упаковку.", name))
		return
	}

	remaining, _ := s.store.DecrementQuantity(userID)
	slog.Info("Reminder fired", "user_id", userID, "medicine", name, "remaining", remaining)
	s.notifier.Notify(ctx, userID, fmt.Sprintf(
		"Напоминание: пора принять '%s'.\nОсталось: %d доз(ы).", name, remaining))
}
