package audit

import "time"

// Event is an immutable, append-only audit record of a line lifecycle
// action.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor and ip capture are best-effort; billing flows never block on
//   audit failures.

type Event struct {
	ID string `json:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type"`

	// ActorUserID is the authenticated user causing the event.
	ActorUserID string `json:"actor_user_id,omitempty"`
	ActorRole   string `json:"actor_role,omitempty"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty"`

	// Target identifiers (optional, depending on the event type).
	LineID string `json:"line_id,omitempty"`
	CallID string `json:"call_id,omitempty"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeLineCreated    EventType = "line_created"
	EventTypeCycleAdvanced  EventType = "cycle_advanced"
	EventTypeLineTerminated EventType = "line_terminated"
)
