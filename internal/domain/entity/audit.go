package entity

import "time"

// AuditEntry is the record published after a fulfillment run completes,
// whether fully or partially.
type AuditEntry struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	SessionID string        `json:"session_id"`
	Status    string        `json:"status"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failures  []ItemFailure `json:"failures,omitempty"`
	At        time.Time     `json:"at"`
}
