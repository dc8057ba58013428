package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// AcknowledgmentRepository provides in-memory acknowledgment storage
type AcknowledgmentRepository struct {
	mu   sync.RWMutex
	acks map[uuid.UUID]*entities.Acknowledgment
}

// NewAcknowledgmentRepository creates a new in-memory acknowledgment repository
func NewAcknowledgmentRepository() *AcknowledgmentRepository {
	return &AcknowledgmentRepository{
		acks: make(map[uuid.UUID]*entities.Acknowledgment),
	}
}

// Verify interface compliance
var _ repositories.AcknowledgmentRepository = (*AcknowledgmentRepository)(nil)

// CreateAcknowledgment inserts a new snapshot row
func (r *AcknowledgmentRepository) CreateAcknowledgment(ctx context.Context, ack *entities.Acknowledgment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *ack
	stored.Items = make([]entities.UnfulfilledItem, len(ack.Items))
	copy(stored.Items, ack.Items)
	r.acks[ack.ID] = &stored
	return nil
}

// AttachWorkOrder sets the work-order reference on an existing acknowledgment
func (r *AcknowledgmentRepository) AttachWorkOrder(ctx context.Context, ackID, workOrderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ack, ok := r.acks[ackID]
	if !ok {
		return repositories.ErrAcknowledgmentNotFound
	}
	wo := workOrderID
	ack.WorkOrderID = &wo
	return nil
}

// LatestSince returns the most recent acknowledgment by userID at or after since
func (r *AcknowledgmentRepository) LatestSince(ctx context.Context, userID uuid.UUID, since time.Time) (*entities.Acknowledgment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *entities.Acknowledgment
	for _, ack := range r.acks {
		if ack.UserID != userID || ack.AcknowledgedAt.Before(since) {
			continue
		}
		if latest == nil || ack.AcknowledgedAt.After(latest.AcknowledgedAt) {
			latest = ack
		}
	}
	if latest == nil {
		return nil, repositories.ErrAcknowledgmentNotFound
	}

	found := *latest
	return &found, nil
}

// Count returns the number of stored acknowledgments
func (r *AcknowledgmentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.acks)
}
