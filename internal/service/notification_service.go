package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-engine/internal/events"
)

// NotificationService logs emitted domain events. Delivery and content
// formatting belong to the surrounding platform; this is the in-process
// audit trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to all engine events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventAssignmentCreated,
		events.EventAssignmentApproved,
		events.EventAssignmentRejected,
		events.EventShiftMaterialized,
		events.EventShiftCompleted,
		events.EventPayrollDerived,
		events.EventConflictDetected,
	} {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("event_id", event.EventID),
		zap.String("actor_id", event.Actor.ID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
