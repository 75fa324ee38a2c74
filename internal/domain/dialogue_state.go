package domain

// DialogueState enumerates the steps of the regimen setup conversation.
// The zero value is StateIdle: no dialogue in progress.
type DialogueState int

const (
	// StateIdle means no setup dialogue is active for the user.
	StateIdle DialogueState = iota
	// StateAwaitingName means the bot asked for the medicine name.
	StateAwaitingName
	// StateAwaitingFrequency means the bot asked for doses per day.
	StateAwaitingFrequency
	// StateAwaitingQuantity means the bot asked for the remaining dose count.
	StateAwaitingQuantity
)

// String returns a short label for logging.
func (s DialogueState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingFrequency:
		return "awaiting_frequency"
	case StateAwaitingQuantity:
		return "awaiting_quantity"
	default:
		return "unknown"
	}
}
