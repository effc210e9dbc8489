package inventory

import "time"

const (
	OperationIncrement = "increment"
	OperationDecrement = "decrement"
)

// ItemChangedEvent is published after every successful mutation.
type ItemChangedEvent struct {
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	Operation  string    `json:"operation"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
