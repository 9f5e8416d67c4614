package interfaces

import (
	"context"

	"marketplace-server/internal/models"
)

// Uploader stores bytes in blob storage and returns a public URL.
// Failures wrap models.ErrUploadFailed.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}

// EventPublisher sends domain events after a committed write.
type EventPublisher interface {
	Publish(ctx context.Context, event models.DomainEvent) error
}
