package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPublisher mocks the RabbitMQ publisher for repositories and telemetry.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
