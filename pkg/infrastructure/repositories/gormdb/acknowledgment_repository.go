package gormdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// AcknowledgmentRepository persists acknowledgment snapshots in Postgres
type AcknowledgmentRepository struct {
	db *gorm.DB
}

// NewAcknowledgmentRepository creates a Postgres-backed acknowledgment repository
func NewAcknowledgmentRepository(db *gorm.DB) *AcknowledgmentRepository {
	return &AcknowledgmentRepository{db: db}
}

// Verify interface compliance
var _ repositories.AcknowledgmentRepository = (*AcknowledgmentRepository)(nil)

// CreateAcknowledgment inserts a new immutable snapshot row
func (r *AcknowledgmentRepository) CreateAcknowledgment(ctx context.Context, ack *entities.Acknowledgment) error {
	snapshot, err := json.Marshal(ack.Items)
	if err != nil {
		return fmt.Errorf("failed to encode item snapshot: %w", err)
	}

	row := acknowledgmentRow{
		ID:             ack.ID,
		UserID:         ack.UserID,
		UserName:       ack.UserName,
		AcknowledgedAt: ack.AcknowledgedAt,
		ItemsSnapshot:  snapshot,
		Notes:          ack.Notes,
		WorkOrderID:    ack.WorkOrderID,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert acknowledgment: %w", err)
	}
	return nil
}

// AttachWorkOrder sets the work-order reference on an existing acknowledgment
func (r *AcknowledgmentRepository) AttachWorkOrder(ctx context.Context, ackID, workOrderID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&acknowledgmentRow{}).
		Where("id = ?", ackID).
		Update("work_order_id", workOrderID)
	if res.Error != nil {
		return fmt.Errorf("failed to attach work order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrAcknowledgmentNotFound
	}
	return nil
}

// LatestSince returns the most recent acknowledgment by userID at or after since
func (r *AcknowledgmentRepository) LatestSince(ctx context.Context, userID uuid.UUID, since time.Time) (*entities.Acknowledgment, error) {
	var row acknowledgmentRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND acknowledged_at >= ?", userID, since).
		Order("acknowledged_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrAcknowledgmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query acknowledgments: %w", err)
	}

	var items []entities.UnfulfilledItem
	if len(row.ItemsSnapshot) > 0 {
		if err := json.Unmarshal(row.ItemsSnapshot, &items); err != nil {
			return nil, fmt.Errorf("failed to decode item snapshot: %w", err)
		}
	}

	return &entities.Acknowledgment{
		ID:             row.ID,
		UserID:         row.UserID,
		UserName:       row.UserName,
		AcknowledgedAt: row.AcknowledgedAt,
		Items:          items,
		Notes:          row.Notes,
		WorkOrderID:    row.WorkOrderID,
	}, nil
}
