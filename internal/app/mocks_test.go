package app

import (
	"context"
	"net/http"

	"github.com/maxbond/telegram/internal/domain/notification"
	"github.com/maxbond/telegram/pkg/telegram"

	"github.com/stretchr/testify/mock"
)

// MockTelegramClient is a mock implementation of domain telegram.Client.
type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, params telegram.Params) (*http.Response, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (m *MockTelegramClient) SendFile(ctx context.Context, params telegram.Params, fileType string, multipart bool) (*http.Response, error) {
	args := m.Called(ctx, params, fileType, multipart)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (m *MockTelegramClient) SendLocation(ctx context.Context, params telegram.Params) (*http.Response, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

// MockDeliveryRepository is a mock implementation of notification.Repository.
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Create(ctx context.Context, d *notification.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) ListRecent(ctx context.Context, limit int) ([]*notification.Delivery, error) {
	args := m.Called(ctx, limit)
	deliveries, _ := args.Get(0).([]*notification.Delivery)
	return deliveries, args.Error(1)
}
