package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crane-workorders/internal/events"
)

// AuditService writes workorder lifecycle events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventWorkorderCreated, a.record)
	a.dispatcher.Subscribe(events.EventWorkorderUpdated, a.record)
	a.dispatcher.Subscribe(events.EventWorkorderStatusChanged, a.record)
	a.dispatcher.Subscribe(events.EventWorkorderDeleted, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("workorder_id", event.WorkorderID),
		zap.Int64("actor_id", event.Actor.UserID),
		zap.String("actor", event.Actor.Username),
		zap.Time("at", event.Timestamp),
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	a.logger.Info("workorder event", fields...)
	return nil
}
