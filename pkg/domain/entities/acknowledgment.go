package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Acknowledgment represents an immutable audit record that a user reviewed a
// specific prioritized shortage list at a point in time. The item snapshot is
// frozen at creation; only the work-order link may be attached afterwards.
type Acknowledgment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	UserName       string
	AcknowledgedAt time.Time
	Items          []UnfulfilledItem
	Notes          string
	WorkOrderID    *uuid.UUID
}

// NewAcknowledgment creates a validated Acknowledgment owned by user.
// Any item list, including an empty one, may be acknowledged.
func NewAcknowledgment(user *User, items []UnfulfilledItem, notes string, at time.Time) (*Acknowledgment, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, fmt.Errorf("acknowledging user is required")
	}
	if at.IsZero() {
		return nil, fmt.Errorf("acknowledgment time cannot be zero")
	}

	snapshot := make([]UnfulfilledItem, len(items))
	copy(snapshot, items)

	return &Acknowledgment{
		ID:             uuid.New(),
		UserID:         user.ID,
		UserName:       user.Name,
		AcknowledgedAt: at,
		Items:          snapshot,
		Notes:          notes,
	}, nil
}

// Linked reports whether a work order has been attached.
func (a *Acknowledgment) Linked() bool {
	return a.WorkOrderID != nil
}
