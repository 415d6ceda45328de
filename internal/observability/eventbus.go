package observability

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// EventBus implements the domain EventPublisher interface by writing each
// event as a structured log entry.
type EventBus struct {
	logger *zap.Logger
}

// NewEventBus creates a new event bus.
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		logger: logger,
	}
}

// Publish publishes an event with the given type and data.
func (e *EventBus) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if e.logger == nil {
		return
	}

	// Sorted keys keep log lines stable across runs.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(data)+1)
	fields = append(fields, String("event", eventType))
	for _, k := range keys {
		fields = append(fields, Any(k, data[k]))
	}

	logger := e.logger
	if requestID := GetRequestID(ctx); requestID != "" {
		logger = logger.With(String("request_id", requestID))
	}

	logger.Info(eventType, fields...)
}
