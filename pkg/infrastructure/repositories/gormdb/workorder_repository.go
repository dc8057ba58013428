package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// WorkOrderRepository updates work-order bookkeeping in Postgres
type WorkOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a Postgres-backed work-order repository
func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Verify interface compliance
var _ repositories.WorkOrderRepository = (*WorkOrderRepository)(nil)

// MarkUnfulfilledAcknowledged flags the work order as raised against an
// acknowledged shortage list
func (r *WorkOrderRepository) MarkUnfulfilledAcknowledged(ctx context.Context, workOrderID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&workOrderRow{}).
		Where("id = ?", workOrderID).
		Updates(map[string]interface{}{
			"unfulfilled_items_acknowledged": true,
			"updated_at":                     time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to flag work order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrWorkOrderNotFound
	}
	return nil
}
