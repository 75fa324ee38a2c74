package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/avoronin/pillbot/internal/dialogue"
	"github.com/avoronin/pillbot/internal/domain"
	"github.com/avoronin/pillbot/internal/regimen"
	"github.com/avoronin/pillbot/internal/status"
)

type noopArmer struct{}

func (noopArmer) Arm(context.Context, string) error { return nil }

func newTestRouter() (*Router, *regimen.Store) {
	store := regimen.NewStore()
	engine := dialogue.NewEngine(store, noopArmer{})
	reporter := status.NewReporter(store)
	return NewRouter(engine, reporter, store, nil), store
}

func setup(t *testing.T, r *Router, userID, name, frequency, quantity string) {
	t.Helper()
	ctx := context.Background()
	r.Handle(ctx, userID, "/start")
	r.Handle(ctx, userID, name)
	r.Handle(ctx, userID, frequency)
	r.Handle(ctx, userID, quantity)
}

func TestRouter_StartGreets(t *testing.T) {
	r, store := newTestRouter()

	reply := r.Handle(context.Background(), "user1", "/start")
	if !strings.Contains(reply, "название лекарства") {
		t.Errorf("Unexpected greeting: %q", reply)
	}
	if store.State("user1") != domain.StateAwaitingName {
		t.Errorf("Expected awaiting_name, got %v", store.State("user1"))
	}
}

func TestRouter_FullSetupFlow(t *testing.T) {
	r, store := newTestRouter()
	setup(t, r, "user1", "Aspirin", "2", "10")

	reg, ok := store.Regimen("user1")
	if !ok || !reg.Configured() {
		t.Fatalf("Expected configured regimen, got %+v", reg)
	}

	reply := r.Handle(context.Background(), "user1", "/status")
	if !strings.Contains(reply, "Aspirin") || !strings.Contains(reply, "Остаток: 10") {
		t.Errorf("Unexpected status: %q", reply)
	}
}

func TestRouter_CommandsWinOverDialogue(t *testing.T) {
	r, store := newTestRouter()
	ctx := context.Background()

	r.Handle(ctx, "user1", "/start")
	r.Handle(ctx, "user1", "Aspirin")

	// /status mid-dialogue answers the query and leaves the step untouched.
	reply := r.Handle(ctx, "user1", "/status")
	if !strings.Contains(reply, "Текущие настройки") {
		t.Errorf("Expected status reply, got %q", reply)
	}
	if store.State("user1") != domain.StateAwaitingFrequency {
		t.Errorf("Expected awaiting_frequency preserved, got %v", store.State("user1"))
	}
}

func TestRouter_UnknownMessageWhenIdle(t *testing.T) {
	r, _ := newTestRouter()

	reply := r.Handle(context.Background(), "user1", "hello")
	if reply != msgUnknown {
		t.Errorf("Expected unknown-message hint, got %q", reply)
	}
}

func TestRouter_Help(t *testing.T) {
	r, _ := newTestRouter()

	reply := r.Handle(context.Background(), "user1", "/help")
	if !strings.Contains(reply, "/start") || !strings.Contains(reply, "/status") {
		t.Errorf("Unexpected help text: %q", reply)
	}
}

func TestRouter_DeleteWithoutRegimen(t *testing.T) {
	r, _ := newTestRouter()

	reply := r.Handle(context.Background(), "user1", "/delete")
	if reply != msgNoDelete {
		t.Errorf("Expected no-delete reply, got %q", reply)
	}
}

func TestRouter_DeleteConfiguredRegimen(t *testing.T) {
	r, store := newTestRouter()
	setup(t, r, "user1", "Aspirin", "2", "10")

	reply := r.Handle(context.Background(), "user1", "/delete")
	if !strings.Contains(reply, "'Aspirin' удалено") {
		t.Errorf("Unexpected delete reply: %q", reply)
	}
	if _, ok := store.Regimen("user1"); ok {
		t.Error("Expected regimen removed")
	}
}

func TestRouter_CancelThenFreshStart(t *testing.T) {
	r, store := newTestRouter()
	ctx := context.Background()

	r.Handle(ctx, "user1", "/start")
	r.Handle(ctx, "user1", "Aspirin")
	r.Handle(ctx, "user1", "/cancel")

	if store.State("user1") != domain.StateIdle {
		t.Errorf("Expected idle after cancel, got %v", store.State("user1"))
	}

	r.Handle(ctx, "user1", "/start")
	reg, _ := store.Regimen("user1")
	if reg.Name != "" {
		t.Errorf("Expected old name discarded, got %q", reg.Name)
	}
}

func TestRouter_UsersAreIndependent(t *testing.T) {
	r, store := newTestRouter()
	ctx := context.Background()

	setup(t, r, "user1", "Aspirin", "2", "10")
	r.Handle(ctx, "user2", "/start")
	r.Handle(ctx, "user2", "Ibuprofen")

	reg1, _ := store.Regimen("user1")
	if reg1.Name != "Aspirin" {
		t.Errorf("User1 regimen affected by user2 dialogue: %+v", reg1)
	}
	if store.State("user2") != domain.StateAwaitingFrequency {
		t.Errorf("Unexpected user2 state: %v", store.State("user2"))
	}
}
