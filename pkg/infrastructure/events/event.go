package events

import (
	"time"
)

// Event represents one immutable entry in the audit trail. Events are
// grouped into streams, one stream per acknowledgment, with versions
// assigned in append order.
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventHandler receives events it has subscribed to. Handlers are
// best-effort observers; a handler error never fails the append.
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore represents the append-only audit log
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

type auditEvent struct {
	eventType string
	stream    string
	data      interface{}
	at        time.Time
	version   int
}

func (e auditEvent) Type() string         { return e.eventType }
func (e auditEvent) StreamID() string     { return e.stream }
func (e auditEvent) Data() interface{}    { return e.data }
func (e auditEvent) Timestamp() time.Time { return e.at }
func (e auditEvent) Version() int         { return e.version }

// NewEvent creates an unversioned event; the store assigns the stream
// version when the event is appended.
func NewEvent(eventType, streamID string, data interface{}) Event {
	return auditEvent{
		eventType: eventType,
		stream:    streamID,
		data:      data,
		at:        time.Now(),
	}
}
