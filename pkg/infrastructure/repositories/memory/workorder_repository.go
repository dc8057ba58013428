package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// WorkOrderRepository provides in-memory work-order storage
type WorkOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*entities.WorkOrder
}

// NewWorkOrderRepository creates a new in-memory work-order repository
func NewWorkOrderRepository() *WorkOrderRepository {
	return &WorkOrderRepository{
		orders: make(map[uuid.UUID]*entities.WorkOrder),
	}
}

// Verify interface compliance
var _ repositories.WorkOrderRepository = (*WorkOrderRepository)(nil)

// AddWorkOrder stores a work order
func (r *WorkOrderRepository) AddWorkOrder(order entities.WorkOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = &order
}

// GetWorkOrder returns a stored work order
func (r *WorkOrderRepository) GetWorkOrder(id uuid.UUID) (*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrWorkOrderNotFound
	}
	found := *order
	return &found, nil
}

// MarkUnfulfilledAcknowledged flags the work order
func (r *WorkOrderRepository) MarkUnfulfilledAcknowledged(ctx context.Context, workOrderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[workOrderID]
	if !ok {
		return repositories.ErrWorkOrderNotFound
	}
	order.UnfulfilledItemsAcknowledged = true
	return nil
}
