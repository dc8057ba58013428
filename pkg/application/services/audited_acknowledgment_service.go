package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/infrastructure/events"
)

// AuditedAcknowledgmentService decorates AcknowledgmentService with an audit
// event trail. Event publication is best-effort: a failed append is logged
// and never fails the underlying operation.
type AuditedAcknowledgmentService struct {
	inner      *AcknowledgmentService
	eventStore events.EventStore
	logger     *zap.Logger
}

// NewAuditedAcknowledgmentService wraps an acknowledgment service with event publishing
func NewAuditedAcknowledgmentService(
	inner *AcknowledgmentService,
	eventStore events.EventStore,
	logger *zap.Logger,
) *AuditedAcknowledgmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditedAcknowledgmentService{
		inner:      inner,
		eventStore: eventStore,
		logger:     logger,
	}
}

// Create records an acknowledgment and publishes an audit event
func (s *AuditedAcknowledgmentService) Create(
	ctx context.Context,
	items []entities.UnfulfilledItem,
	notes string,
) (*entities.Acknowledgment, error) {
	ack, err := s.inner.Create(ctx, items, notes)
	if err != nil {
		return nil, err
	}

	event := events.NewAcknowledgmentCreatedEvent(ack)
	if appendErr := s.eventStore.AppendEvent(ack.ID.String(), event); appendErr != nil {
		s.logger.Warn("Failed to publish acknowledgment created event", zap.Error(appendErr))
	}

	return ack, nil
}

// LinkToWorkOrder links an acknowledgment and publishes the outcome,
// including the partially-linked case.
func (s *AuditedAcknowledgmentService) LinkToWorkOrder(ctx context.Context, ackID, workOrderID uuid.UUID) error {
	err := s.inner.LinkToWorkOrder(ctx, ackID, workOrderID)

	var partial *PartialLinkError
	switch {
	case err == nil:
		event := events.NewAcknowledgmentLinkedEvent(ackID, workOrderID, false)
		if appendErr := s.eventStore.AppendEvent(ackID.String(), event); appendErr != nil {
			s.logger.Warn("Failed to publish acknowledgment linked event", zap.Error(appendErr))
		}
	case errors.As(err, &partial):
		event := events.NewAcknowledgmentLinkedEvent(ackID, workOrderID, true)
		if appendErr := s.eventStore.AppendEvent(ackID.String(), event); appendErr != nil {
			s.logger.Warn("Failed to publish partial link event", zap.Error(appendErr))
		}
	}

	return err
}

// TodaysAcknowledgment delegates to the wrapped service
func (s *AuditedAcknowledgmentService) TodaysAcknowledgment(ctx context.Context) (*entities.Acknowledgment, error) {
	return s.inner.TodaysAcknowledgment(ctx)
}
