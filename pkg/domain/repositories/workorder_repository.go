package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrWorkOrderNotFound is returned when no work order matches
var ErrWorkOrderNotFound = errors.New("work order not found")

// WorkOrderRepository provides the acknowledgment flow's view of production
// work orders. The full work-order lifecycle is owned elsewhere.
type WorkOrderRepository interface {
	// MarkUnfulfilledAcknowledged flags the work order as having been
	// created against an acknowledged shortage list. Returns
	// ErrWorkOrderNotFound when the id is unknown.
	MarkUnfulfilledAcknowledged(ctx context.Context, workOrderID uuid.UUID) error
}
