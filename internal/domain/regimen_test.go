package domain

import "testing"

func TestRegimen_Configured(t *testing.T) {
	var reg Regimen
	if reg.Configured() {
		t.Error("Zero regimen must not be configured")
	}

	reg.Name = "Aspirin"
	reg.FrequencyPerDay = 2
	if reg.Configured() {
		t.Error("Regimen without quantity must not be configured")
	}

	reg.QuantitySet = true
	if !reg.Configured() {
		t.Error("Expected configured regimen")
	}

	// Decremented to zero stays configured.
	reg.QuantityRemain = 0
	if !reg.Configured() {
		t.Error("Zero remaining quantity must stay configured")
	}
}

func TestDialogueState_String(t *testing.T) {
	cases := map[DialogueState]string{
		StateIdle:              "idle",
		StateAwaitingName:      "awaiting_name",
		StateAwaitingFrequency: "awaiting_frequency",
		StateAwaitingQuantity:  "awaiting_quantity",
		DialogueState(99):      "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State %d: got %q, want %q", state, got, want)
		}
	}
}
