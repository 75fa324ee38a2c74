// Package status formats read-only regimen snapshots for users.
package status

import (
	"fmt"
	"strconv"

	"github.com/avoronin/pillbot/internal/regimen"
)

// notConfigured substitutes for any field the user has not set yet.
const notConfigured = "не указано"

// Reporter renders the current regimen settings for a user. It never mutates
// state and never fails; missing fields are reported as placeholders.
type Reporter struct {
	store *regimen.Store
}

// NewReporter creates a reporter over the given store.
func NewReporter(store *regimen.Store) *Reporter {
	return &Reporter{store: store}
}

// Report returns the status text for a user. Unset fields, or a user with no
// session at all, show the "not configured" placeholder.
func (r *Reporter) Report(userID string) string {
	name := notConfigured
	frequency := notConfigured
	quantity := notConfigured

	if reg, ok := r.store.Regimen(userID); ok {
		if reg.HasName() {
			name = reg.Name
		}
		if reg.HasFrequency() {
			frequency = strconv.Itoa(reg.FrequencyPerDay)
		}
		if reg.QuantitySet {
			quantity = strconv.Itoa(reg.QuantityRemain)
		}
	}

	return fmt.Sprintf("Текущие настройки:\n"+
		"Лекарство: %s\n"+
		"Частота приема: %s раз(а) в день\n"+
		"Остаток: %s доз(ы).", name, frequency, quantity)
}
