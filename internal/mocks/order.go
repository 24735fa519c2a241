package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/service"
)

// MockOrderService is a mock implementation of the order service
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, input service.OrderInput) (*model.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Pay(ctx context.Context, id string, input service.PaymentInput) (*model.Order, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
