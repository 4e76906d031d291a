package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"agrodesk/internal/domain"
	"agrodesk/internal/listing"
	"agrodesk/internal/service"
)

// MockPurchaseOrderService is a mock implementation of service.PurchaseOrderService.
type MockPurchaseOrderService struct {
	mock.Mock
}

func (m *MockPurchaseOrderService) Create(ctx context.Context, input service.PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) List(ctx context.Context, opts service.ListOptions) (listing.Page[domain.PurchaseOrder], error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(listing.Page[domain.PurchaseOrder]), args.Error(1)
}

func (m *MockPurchaseOrderService) Update(ctx context.Context, id uuid.UUID, input service.PurchaseOrderInput) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderService) ExportRegister(ctx context.Context, filter listing.FilterState) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
