package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// ErrNotAuthenticated is returned when an operation requires a signed-in
// user and none is available.
var ErrNotAuthenticated = errors.New("not authenticated")

// IdentityProvider resolves the current authenticated user. Implementations
// return ErrNotAuthenticated when no identity is available.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*entities.User, error)
}

// PartialLinkError reports that the acknowledgment was linked to the work
// order but flagging the work order failed. The acknowledgment row remains
// valid; an acknowledgment with a link whose work order is unflagged is a
// detectable state, not corruption.
type PartialLinkError struct {
	AcknowledgmentID uuid.UUID
	WorkOrderID      uuid.UUID
	Err              error
}

func (e *PartialLinkError) Error() string {
	return fmt.Sprintf("acknowledgment %s linked but work order %s not flagged: %v",
		e.AcknowledgmentID, e.WorkOrderID, e.Err)
}

func (e *PartialLinkError) Unwrap() error {
	return e.Err
}

// AcknowledgmentService records that a user reviewed the current prioritized
// shortage list and optionally ties the review to a production work order.
type AcknowledgmentService struct {
	ackRepo       repositories.AcknowledgmentRepository
	workOrderRepo repositories.WorkOrderRepository
	identity      IdentityProvider
	logger        *zap.Logger
	clock         func() time.Time
}

// NewAcknowledgmentService creates a new acknowledgment service
func NewAcknowledgmentService(
	ackRepo repositories.AcknowledgmentRepository,
	workOrderRepo repositories.WorkOrderRepository,
	identity IdentityProvider,
	logger *zap.Logger,
) *AcknowledgmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcknowledgmentService{
		ackRepo:       ackRepo,
		workOrderRepo: workOrderRepo,
		identity:      identity,
		logger:        logger,
		clock:         time.Now,
	}
}

// Create inserts an immutable snapshot of the given item list for the
// current user. It fails with ErrNotAuthenticated when no identity is
// available; no row is written in that case. Any list, including an empty
// one, may be acknowledged.
func (s *AcknowledgmentService) Create(
	ctx context.Context,
	items []entities.UnfulfilledItem,
	notes string,
) (*entities.Acknowledgment, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acknowledging user: %w", err)
	}

	ack, err := entities.NewAcknowledgment(user, items, notes, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to build acknowledgment: %w", err)
	}

	if err := s.ackRepo.CreateAcknowledgment(ctx, ack); err != nil {
		return nil, fmt.Errorf("failed to store acknowledgment: %w", err)
	}

	s.logger.Info("Shortage list acknowledged",
		zap.String("acknowledgment_id", ack.ID.String()),
		zap.String("user", ack.UserName),
		zap.Int("items", len(ack.Items)))

	return ack, nil
}

// LinkToWorkOrder attaches a work order to an existing acknowledgment and
// flags the work order as raised against acknowledged shortages. The two
// updates are sequential and not atomic: if flagging fails after the link
// succeeded, a *PartialLinkError is returned rather than the failure being
// swallowed.
func (s *AcknowledgmentService) LinkToWorkOrder(ctx context.Context, ackID, workOrderID uuid.UUID) error {
	if err := s.ackRepo.AttachWorkOrder(ctx, ackID, workOrderID); err != nil {
		return fmt.Errorf("failed to link acknowledgment %s: %w", ackID, err)
	}

	if err := s.workOrderRepo.MarkUnfulfilledAcknowledged(ctx, workOrderID); err != nil {
		s.logger.Warn("Work order left unflagged after acknowledgment link",
			zap.String("acknowledgment_id", ackID.String()),
			zap.String("work_order_id", workOrderID.String()),
			zap.Error(err))
		return &PartialLinkError{
			AcknowledgmentID: ackID,
			WorkOrderID:      workOrderID,
			Err:              err,
		}
	}

	return nil
}

// TodaysAcknowledgment returns the current user's most recent acknowledgment
// since local midnight, or nil when the user has not acknowledged today.
// Used to decide whether the user should be prompted again.
func (s *AcknowledgmentService) TodaysAcknowledgment(ctx context.Context) (*entities.Acknowledgment, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	now := s.clock()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	ack, err := s.ackRepo.LatestSince(ctx, user.ID, midnight)
	if errors.Is(err, repositories.ErrAcknowledgmentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query today's acknowledgment: %w", err)
	}
	return ack, nil
}
