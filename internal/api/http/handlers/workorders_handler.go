package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crane-workorders/internal/api/dto"
	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/events"
	"github.com/spec-kit/crane-workorders/internal/service"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

// WorkordersHandler manages workorder CRUD endpoints.
type WorkordersHandler struct {
	service *service.WorkorderService
}

// NewWorkordersHandler constructs handler.
func NewWorkordersHandler(workorderService *service.WorkorderService) *WorkordersHandler {
	return &WorkordersHandler{service: workorderService}
}

// List GET /api/workorders.
func (h *WorkordersHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.WorkorderResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewWorkorderResponse(&items[i]))
	}
	return c.JSON(out)
}

// Get GET /api/workorders/:id.
func (h *WorkordersHandler) Get(c *fiber.Ctx) error {
	id, err := workorderID(c)
	if err != nil {
		return err
	}
	wo, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkorderResponse(wo))
}

// Create POST /api/workorders.
func (h *WorkordersHandler) Create(c *fiber.Ctx) error {
	req, err := parseWorkorder(c)
	if err != nil {
		return err
	}
	wo, err := h.service.Create(c.UserContext(), actorFrom(c), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkorderResponse(wo))
}

// Update PUT /api/workorders/:id.
func (h *WorkordersHandler) Update(c *fiber.Ctx) error {
	id, err := workorderID(c)
	if err != nil {
		return err
	}
	req, err := parseWorkorder(c)
	if err != nil {
		return err
	}
	wo, err := h.service.Update(c.UserContext(), actorFrom(c), id, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkorderResponse(wo))
}

// Delete DELETE /api/workorders/:id.
func (h *WorkordersHandler) Delete(c *fiber.Ctx) error {
	id, err := workorderID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

func workorderID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("workorder id must be an integer")
	}
	return id, nil
}

func parseWorkorder(c *fiber.Ctx) (dto.WorkorderRequest, error) {
	var req dto.WorkorderRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid workorder payload")
	}
	if req.Title == "" {
		return req, apperrors.NewValidationError("title is required")
	}
	return req, nil
}

func actorFrom(c *fiber.Ctx) events.Actor {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: principal.User.ID, Username: principal.User.Username}
}
