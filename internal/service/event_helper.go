package service

import (
	"context"

	"cassie-be/internal/pkg/logger"
	"cassie-be/pkg/events"
)

// publishEvent is best effort: a bus failure is logged and never fails the caller.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, module string, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"error": err,
			"type":  event.EventType(),
		})
	}
}
