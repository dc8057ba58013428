package entities

import (
	"time"

	"github.com/google/uuid"
)

// WorkOrderStatus represents the lifecycle state of a production work order
type WorkOrderStatus string

const (
	WorkOrderDraft      WorkOrderStatus = "draft"
	WorkOrderScheduled  WorkOrderStatus = "scheduled"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
)

// WorkOrder represents a production work order. Only the fields the
// acknowledgment flow touches are modeled here; the rest of the work-order
// lifecycle lives in the production module.
type WorkOrder struct {
	ID          uuid.UUID
	OrderNumber string
	Status      WorkOrderStatus
	CreatedAt   time.Time

	// UnfulfilledItemsAcknowledged is set when the work order was raised in
	// response to an acknowledged shortage list.
	UnfulfilledItemsAcknowledged bool
}
