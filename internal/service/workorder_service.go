package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/crane-workorders/internal/domain"
	"github.com/spec-kit/crane-workorders/internal/events"
	"github.com/spec-kit/crane-workorders/internal/repository"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

// WorkorderService coordinates workorder CRUD and lifecycle events.
type WorkorderService struct {
	workorders repository.WorkorderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// WorkorderDependencies bundles collaborators for the workorder service.
type WorkorderDependencies struct {
	WorkorderRepo repository.WorkorderRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewWorkorderService constructs the service.
func NewWorkorderService(deps WorkorderDependencies) *WorkorderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkorderService{
		workorders: deps.WorkorderRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

func (s *WorkorderService) List(ctx context.Context) ([]domain.Workorder, error) {
	items, err := s.workorders.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

func (s *WorkorderService) Get(ctx context.Context, id int64) (*domain.Workorder, error) {
	wo, err := s.workorders.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return wo, nil
}

// Create stores a new workorder. An empty status becomes in_progress.
func (s *WorkorderService) Create(ctx context.Context, actor events.Actor, input domain.WorkorderInput) (*domain.Workorder, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	wo, err := s.workorders.Create(ctx, input)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventWorkorderCreated,
		WorkorderID: wo.ID,
		Actor:       actor,
		Payload: events.WorkorderCreatedPayload{
			Title:      wo.Title,
			Technician: wo.Technician,
			Status:     wo.Status,
		},
	})
	return wo, nil
}

// Update replaces every mutable field of an existing workorder.
func (s *WorkorderService) Update(ctx context.Context, actor events.Actor, id int64, input domain.WorkorderInput) (*domain.Workorder, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	before, err := s.workorders.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	wo, err := s.workorders.Update(ctx, id, input)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventWorkorderUpdated,
		WorkorderID: wo.ID,
		Actor:       actor,
		Payload: events.WorkorderUpdatedPayload{
			Title:      wo.Title,
			Technician: wo.Technician,
			Status:     wo.Status,
		},
	})
	if before.Status != wo.Status {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventWorkorderStatusChanged,
			WorkorderID: wo.ID,
			Actor:       actor,
			Payload: events.WorkorderStatusChangedPayload{
				OldStatus: before.Status,
				NewStatus: wo.Status,
			},
		})
	}
	return wo, nil
}

func (s *WorkorderService) Delete(ctx context.Context, actor events.Actor, id int64) error {
	if err := s.workorders.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventWorkorderDeleted,
		WorkorderID: id,
		Actor:       actor,
	})
	return nil
}

func normalizeInput(input domain.WorkorderInput) (domain.WorkorderInput, error) {
	if input.Title == "" {
		return input, apperrors.NewValidationError("title is required")
	}
	if input.Status == "" {
		input.Status = domain.WorkorderStatusInProgress
	}
	return input, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Workorder")
	}
	return apperrors.NewInternalError(err)
}

func (s *WorkorderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
