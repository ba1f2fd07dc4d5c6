package events

import (
	"time"

	"github.com/spec-kit/crane-workorders/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkorderCreated       EventType = "workorder_created"
	EventWorkorderUpdated       EventType = "workorder_updated"
	EventWorkorderStatusChanged EventType = "workorder_status_changed"
	EventWorkorderDeleted       EventType = "workorder_deleted"
)

// Actor identifies the account that caused an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	WorkorderID int64       `json:"workorder_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload,omitempty"`
}

// WorkorderCreatedPayload payload.
type WorkorderCreatedPayload struct {
	Title      string                 `json:"title"`
	Technician string                 `json:"technician,omitempty"`
	Status     domain.WorkorderStatus `json:"status"`
}

// WorkorderUpdatedPayload payload.
type WorkorderUpdatedPayload struct {
	Title      string                 `json:"title"`
	Technician string                 `json:"technician,omitempty"`
	Status     domain.WorkorderStatus `json:"status"`
}

// WorkorderStatusChangedPayload payload.
type WorkorderStatusChangedPayload struct {
	OldStatus domain.WorkorderStatus `json:"old_status"`
	NewStatus domain.WorkorderStatus `json:"new_status"`
}
