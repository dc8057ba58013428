package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// ErrAcknowledgmentNotFound is returned when no acknowledgment matches
var ErrAcknowledgmentNotFound = errors.New("acknowledgment not found")

// AcknowledgmentRepository persists acknowledgment snapshots
type AcknowledgmentRepository interface {
	// CreateAcknowledgment inserts a new immutable snapshot row.
	CreateAcknowledgment(ctx context.Context, ack *entities.Acknowledgment) error

	// AttachWorkOrder sets the work-order reference on an existing
	// acknowledgment. Returns ErrAcknowledgmentNotFound when the id is
	// unknown.
	AttachWorkOrder(ctx context.Context, ackID, workOrderID uuid.UUID) error

	// LatestSince returns the most recent acknowledgment created by userID
	// at or after the given time, or ErrAcknowledgmentNotFound.
	LatestSince(ctx context.Context, userID uuid.UUID, since time.Time) (*entities.Acknowledgment, error)
}
