package mocks

import (
	"context"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockProductStore is a mock of store.ProductStore for use with testify/mock
type TestifyMockProductStore struct {
	mock.Mock
}

var _ store.ProductStore = (*TestifyMockProductStore)(nil)

// Create is a mock implementation of store.ProductStore.Create
func (m *TestifyMockProductStore) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ProductStore.GetByID
func (m *TestifyMockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.ProductStore.Update
func (m *TestifyMockProductStore) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// Delete is a mock implementation of store.ProductStore.Delete
func (m *TestifyMockProductStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListByOwner is a mock implementation of store.ProductStore.ListByOwner
func (m *TestifyMockProductStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	args := m.Called(ctx, ownerID)
	if ps, ok := args.Get(0).([]*domain.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListPaged is a mock implementation of store.ProductStore.ListPaged
func (m *TestifyMockProductStore) ListPaged(ctx context.Context, limit, offset int) (store.Page[*domain.Product], error) {
	args := m.Called(ctx, limit, offset)
	page, _ := args.Get(0).(store.Page[*domain.Product])
	return page, args.Error(1)
}
