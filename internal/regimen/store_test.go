package regimen

import (
	"strconv"
	"sync"
	"testing"

	"github.com/avoronin/pillbot/internal/domain"
)

func TestStore_BeginStartsFresh(t *testing.T) {
	s := NewStore()
	s.Begin("user1")
	s.SetName("user1", "Aspirin")
	s.SetFrequency("user1", 2)

	// A new /start must not reuse previously captured fields.
	s.Begin("user1")

	sess, ok := s.Get("user1")
	if !ok {
		t.Fatal("Expected session after Begin")
	}
	if sess.State != domain.StateAwaitingName {
		t.Errorf("Expected awaiting_name state, got %v", sess.State)
	}
	if sess.Regimen.Name != "" || sess.Regimen.FrequencyPerDay != 0 {
		t.Errorf("Expected empty regimen after Begin, got %+v", sess.Regimen)
	}
}

func TestStore_AbsentUserIsIdle(t *testing.T) {
	s := NewStore()
	if state := s.State("nobody"); state != domain.StateIdle {
		t.Errorf("Expected idle state for absent user, got %v", state)
	}
	if _, ok := s.Regimen("nobody"); ok {
		t.Error("Expected no regimen for absent user")
	}
}

func TestStore_DecrementQuantity(t *testing.T) {
	s := NewStore()
	s.Begin("user1")
	s.SetQuantity("user1", 2)

	remaining, ok := s.DecrementQuantity("user1")
	if !ok || remaining != 1 {
		t.Errorf("Expected remaining=1 ok=true, got remaining=%d ok=%v", remaining, ok)
	}

	remaining, ok = s.DecrementQuantity("user1")
	if !ok || remaining != 0 {
		t.Errorf("Expected remaining=0 ok=true, got remaining=%d ok=%v", remaining, ok)
	}

	// Never below zero.
	remaining, ok = s.DecrementQuantity("user1")
	if ok || remaining != 0 {
		t.Errorf("Expected no decrement at zero, got remaining=%d ok=%v", remaining, ok)
	}

	reg, _ := s.Regimen("user1")
	if reg.QuantityRemain != 0 {
		t.Errorf("Expected quantity 0, got %d", reg.QuantityRemain)
	}
}

func TestStore_DecrementAbsentUser(t *testing.T) {
	s := NewStore()
	if _, ok := s.DecrementQuantity("nobody"); ok {
		t.Error("Expected no decrement for absent user")
	}
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	s.Begin("user1")
	s.SetName("user1", "Aspirin")

	s.Reset("user1")

	if _, ok := s.Get("user1"); ok {
		t.Error("Expected no session after Reset")
	}
	if state := s.State("user1"); state != domain.StateIdle {
		t.Errorf("Expected idle state after Reset, got %v", state)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			userID := "user" + strconv.Itoa(i%10)
			s.Begin(userID)
			s.SetQuantity(userID, 5)
			s.DecrementQuantity(userID)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Regimen("user" + strconv.Itoa(i%10))
			s.State("user" + strconv.Itoa(i%10))
		}
	}()

	wg.Wait()
}
