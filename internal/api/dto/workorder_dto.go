package dto

import (
	"time"

	"github.com/spec-kit/crane-workorders/internal/domain"
)

// WorkorderRequest is the create/update payload. Client supplied id and
// timestamps are not part of it and are dropped on decode.
type WorkorderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Technician  string `json:"technician"`
	Status      string `json:"status"`
}

// ToInput converts the payload to the service input.
func (r WorkorderRequest) ToInput() domain.WorkorderInput {
	return domain.WorkorderInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Technician:  r.Technician,
		Status:      domain.WorkorderStatus(r.Status),
	}
}

// WorkorderResponse is the wire form of a workorder.
type WorkorderResponse struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	Technician  string                 `json:"technician"`
	Status      domain.WorkorderStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewWorkorderResponse maps a domain workorder.
func NewWorkorderResponse(wo *domain.Workorder) WorkorderResponse {
	return WorkorderResponse{
		ID:          wo.ID,
		Title:       wo.Title,
		Description: wo.Description,
		Location:    wo.Location,
		Technician:  wo.Technician,
		Status:      wo.Status,
		CreatedAt:   wo.CreatedAt,
		UpdatedAt:   wo.UpdatedAt,
	}
}
