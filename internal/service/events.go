package service

import (
	"context"

	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/pkg/events"
)

// publish never fails the caller; a lost event is logged and dropped.
func publish(ctx context.Context, publisher events.Publisher, log logger.ILogger, module string, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
