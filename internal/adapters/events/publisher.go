package events

import (
	"context"
	"log/slog"
)

// LoggingPublisher stands in for a broker when none is configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType, partitionKey string, payload []byte) error {
	p.logger.InfoContext(ctx, "published event",
		"module", "events.publisher",
		"layer", "adapter",
		"operation", "publish_event",
		"outcome", "success",
		"event_type", eventType,
		"partition_key", partitionKey,
		"payload", string(payload),
	)
	return nil
}
