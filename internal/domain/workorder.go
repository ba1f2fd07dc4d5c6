package domain

import "time"

// WorkorderStatus is free text; the constants are the values clients use today.
type WorkorderStatus string

const (
	WorkorderStatusInProgress WorkorderStatus = "in_progress"
	WorkorderStatusClosed     WorkorderStatus = "closed"
	WorkorderStatusCompleted  WorkorderStatus = "completed"
)

// Workorder is a maintenance job record.
type Workorder struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Location    string          `db:"location"`
	Technician  string          `db:"technician"`
	Status      WorkorderStatus `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// WorkorderInput carries the caller-controlled fields of a workorder.
type WorkorderInput struct {
	Title       string
	Description string
	Location    string
	Technician  string
	Status      WorkorderStatus
}
