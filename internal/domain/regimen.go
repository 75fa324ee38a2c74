// Package domain contains core domain types for the pillbot application.
package domain

// MinFrequencyPerDay and MaxFrequencyPerDay bound how many reminders a user
// may request per day.
const (
	MinFrequencyPerDay = 1
	MaxFrequencyPerDay = 10
)

// Regimen represents a user's medicine regimen: what to take, how often per
// day, and how many doses are left. Zero values mean "not configured".
//
// QuantitySet distinguishes "quantity was never entered" from "quantity has
// been decremented down to zero"; the status report needs the difference.
type Regimen struct {
	Name            string `json:"name"`
	FrequencyPerDay int    `json:"frequency_per_day"`
	QuantityRemain  int    `json:"quantity_remaining"`
	QuantitySet     bool   `json:"quantity_set"`
}

// HasName returns true if the medicine name has been captured.
func (r *Regimen) HasName() bool {
	return r.Name != ""
}

// HasFrequency returns true if the daily frequency has been captured.
func (r *Regimen) HasFrequency() bool {
	return r.FrequencyPerDay >= MinFrequencyPerDay
}

// Configured returns true once all three fields have been captured.
func (r *Regimen) Configured() bool {
	return r.HasName() && r.HasFrequency() && r.QuantitySet
}
