package events

import (
	"go.uber.org/zap"
)

// LoggingHandler mirrors the audit event stream into the structured log
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a handler that logs every event it receives
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHandler{logger: logger}
}

// Verify interface compliance
var _ EventHandler = (*LoggingHandler)(nil)

func (h *LoggingHandler) Handle(event Event) error {
	h.logger.Info("Audit event",
		zap.String("type", event.Type()),
		zap.String("stream", event.StreamID()),
		zap.Time("at", event.Timestamp()),
		zap.Any("data", event.Data()))
	return nil
}

func (h *LoggingHandler) CanHandle(eventType string) bool {
	return true
}
