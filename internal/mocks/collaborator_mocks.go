package mocks

import (
	"context"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/stretchr/testify/mock"
)

var (
	_ interfaces.Uploader       = (*MockUploader)(nil)
	_ interfaces.EventPublisher = (*MockEventPublisher)(nil)
)

// MockUploader is a mock type for interfaces.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	args := m.Called(ctx, data, contentType, folder)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock type for interfaces.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}
