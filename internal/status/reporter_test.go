package status

import (
	"testing"

	"github.com/avoronin/pillbot/internal/regimen"
)

func TestReporter_NotConfigured(t *testing.T) {
	r := NewReporter(regimen.NewStore())

	got := r.Report("nobody")
	want := "Текущие настройки:\n" +
		"Лекарство: не указано\n" +
		"Частота приема: не указано раз(а) в день\n" +
		"Остаток: не указано доз(ы)."
	if got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestReporter_PartiallyConfigured(t *testing.T) {
	store := regimen.NewStore()
	store.Begin("user1")
	store.SetName("user1", "Aspirin")
	r := NewReporter(store)

	got := r.Report("user1")
	want := "Текущие настройки:\n" +
		"Лекарство: Aspirin\n" +
		"Частота приема: не указано раз(а) в день\n" +
		"Остаток: не указано доз(ы)."
	if got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestReporter_Configured(t *testing.T) {
	store := regimen.NewStore()
	store.Begin("user1")
	store.SetName("user1", "Aspirin")
	store.SetFrequency("user1", 2)
	store.SetQuantity("user1", 10)
	r := NewReporter(store)

	got := r.Report("user1")
	want := "Текущие настройки:\n" +
		"Лекарство: Aspirin\n" +
		"Частота приема: 2 раз(а) в день\n" +
		"Остаток: 10 доз(ы)."
	if got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestReporter_ZeroAfterDecrementIsReported(t *testing.T) {
	store := regimen.NewStore()
	store.Begin("user1")
	store.SetName("user1", "Aspirin")
	store.SetFrequency("user1", 1)
	store.SetQuantity("user1", 1)
	store.DecrementQuantity("user1")
	r := NewReporter(store)

	got := r.Report("user1")
	want := "Текущие настройки:\n" +
		"Лекарство: Aspirin\n" +
		"Частота приема: 1 раз(а) в день\n" +
		"Остаток: 0 доз(ы)."
	if got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}
