package service

import (
	"context"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"go.uber.org/zap"
)

// publishEvent sends an event after a committed write. Failures are logged only.
func publishEvent(ctx context.Context, pub interfaces.EventPublisher, logger *zap.Logger, event models.DomainEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("Domain event not published",
			zap.String("type", string(event.Type)),
			zap.Int64("entityID", event.EntityID),
			zap.Error(err),
		)
	}
}
