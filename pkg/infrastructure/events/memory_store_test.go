package events

import (
	"errors"
	"testing"
)

type recordingHandler struct {
	accept  string
	handled []Event
	err     error
}

func (h *recordingHandler) Handle(event Event) error {
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.accept == "" || h.accept == eventType
}

func TestInMemoryEventStore_AppendAssignsStreamVersions(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	if err := store.AppendEvent("ack-1", NewEvent(AcknowledgmentCreatedEvent, "ack-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent("ack-1", NewEvent(AcknowledgmentLinkedEvent, "ack-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent("ack-2", NewEvent(AcknowledgmentCreatedEvent, "ack-2", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	stream, err := store.ReadEvents("ack-1", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("Expected 2 events in stream, got %d", len(stream))
	}
	if stream[0].Version() != 1 || stream[1].Version() != 2 {
		t.Errorf("Expected versions 1 and 2, got %d and %d", stream[0].Version(), stream[1].Version())
	}

	// Versions count per stream, not globally.
	other, err := store.ReadEvents("ack-2", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(other) != 1 || other[0].Version() != 1 {
		t.Errorf("Expected a single version-1 event in the second stream, got %v", other)
	}

	tail, err := store.ReadEvents("ack-1", 2)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(tail) != 1 || tail[0].Type() != AcknowledgmentLinkedEvent {
		t.Errorf("Expected only the linked event from version 2, got %v", tail)
	}

	empty, err := store.ReadEvents("missing", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no events for an unknown stream, got %d", len(empty))
	}
}

func TestInMemoryEventStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	handler := &recordingHandler{}

	if err := store.Subscribe([]string{AcknowledgmentCreatedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := store.AppendEvent("ack-1", NewEvent(AcknowledgmentCreatedEvent, "ack-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent("ack-1", NewEvent(AcknowledgmentLinkedEvent, "ack-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	if len(handler.handled) != 1 {
		t.Fatalf("Expected handler to receive only subscribed event types, got %d events", len(handler.handled))
	}
	if handler.handled[0].Type() != AcknowledgmentCreatedEvent {
		t.Errorf("Expected %s, got %s", AcknowledgmentCreatedEvent, handler.handled[0].Type())
	}

	if err := store.Unsubscribe(handler); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	if err := store.AppendEvent("ack-2", NewEvent(AcknowledgmentCreatedEvent, "ack-2", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if len(handler.handled) != 1 {
		t.Errorf("Expected no delivery after unsubscribe, got %d events", len(handler.handled))
	}
}

func TestInMemoryEventStore_HandlerErrorDoesNotFailAppend(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	handler := &recordingHandler{err: errors.New("handler broke")}

	if err := store.Subscribe([]string{AcknowledgmentCreatedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := store.AppendEvent("ack-1", NewEvent(AcknowledgmentCreatedEvent, "ack-1", nil)); err != nil {
		t.Errorf("Expected append to succeed despite handler error, got %v", err)
	}

	stream, err := store.ReadEvents("ack-1", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(stream) != 1 {
		t.Errorf("Expected the event to be stored, got %d events", len(stream))
	}
}
