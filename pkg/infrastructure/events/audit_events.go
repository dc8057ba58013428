package events

import (
	"github.com/google/uuid"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

const (
	UnfulfilledListRefreshedEvent = "unfulfilled.list.refreshed"

	AcknowledgmentCreatedEvent = "acknowledgment.created"
	AcknowledgmentLinkedEvent  = "acknowledgment.linked"
	AcknowledgmentLinkPartial  = "acknowledgment.link.partial"
)

type UnfulfilledListRefreshed struct {
	TotalCount   int `json:"total_count"`
	TotalOpenSOs int `json:"total_open_sos"`
	Critical     int `json:"critical"`
}

type AcknowledgmentCreated struct {
	AcknowledgmentID uuid.UUID `json:"acknowledgment_id"`
	UserID           uuid.UUID `json:"user_id"`
	UserName         string    `json:"user_name"`
	ItemCount        int       `json:"item_count"`
	Notes            string    `json:"notes,omitempty"`
}

type AcknowledgmentLinked struct {
	AcknowledgmentID uuid.UUID `json:"acknowledgment_id"`
	WorkOrderID      uuid.UUID `json:"work_order_id"`

	// Partial is true when the link was written but the work-order flag
	// update failed.
	Partial bool `json:"partial"`
}

func NewUnfulfilledListRefreshedEvent(totalCount, totalOpenSOs, critical int) Event {
	return NewEvent(UnfulfilledListRefreshedEvent, "unfulfilled", UnfulfilledListRefreshed{
		TotalCount:   totalCount,
		TotalOpenSOs: totalOpenSOs,
		Critical:     critical,
	})
}

func NewAcknowledgmentCreatedEvent(ack *entities.Acknowledgment) Event {
	return NewEvent(AcknowledgmentCreatedEvent, ack.ID.String(), AcknowledgmentCreated{
		AcknowledgmentID: ack.ID,
		UserID:           ack.UserID,
		UserName:         ack.UserName,
		ItemCount:        len(ack.Items),
		Notes:            ack.Notes,
	})
}

func NewAcknowledgmentLinkedEvent(ackID, workOrderID uuid.UUID, partial bool) Event {
	eventType := AcknowledgmentLinkedEvent
	if partial {
		eventType = AcknowledgmentLinkPartial
	}
	return NewEvent(eventType, ackID.String(), AcknowledgmentLinked{
		AcknowledgmentID: ackID,
		WorkOrderID:      workOrderID,
		Partial:          partial,
	})
}
