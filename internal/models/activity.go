package models

import "time"

// Activity event types.
const (
	ActivityRegister    = "REGISTER"
	ActivityLogin       = "LOGIN"
	ActivityPostCreated = "POST_CREATED"
	ActivityPostUpdated = "POST_UPDATED"
	ActivityPostDeleted = "POST_DELETED"
)

// ActivityEvent is a single append-only log entry tied to one user.
type ActivityEvent struct {
	EventID    string    `json:"event_id"`
	UserID     int       `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"` // REGISTER | LOGIN | POST_CREATED | POST_UPDATED | POST_DELETED
	Message    string    `json:"message"`
	Metadata   any       `json:"metadata,omitempty"`
}
