package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ProductStore is a testify mock of store.ProductStore.
type ProductStore struct {
	mock.Mock
}

var _ store.ProductStore = (*ProductStore)(nil)

func (m *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	args := m.Called(ctx, sku)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductStore) List(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductStore) Summarize(ctx context.Context, filter store.ProductFilter) (store.InventorySummary, error) {
	args := m.Called(ctx, filter)
	summary, _ := args.Get(0).(store.InventorySummary)
	return summary, args.Error(1)
}

func (m *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error) {
	args := m.Called(ctx, id, delta)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
