package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
)

// MockProductStore is an in-memory store.ProductStore. Function fields
// override the map-backed defaults.
type MockProductStore struct {
	CreateFn  func(ctx context.Context, product *domain.Product) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Product, error)
	UpdateFn  func(ctx context.Context, product *domain.Product) error
	DeleteFn  func(ctx context.Context, id int64) error

	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	calls    int
}

var _ store.ProductStore = (*MockProductStore)(nil)

// NewMockProductStore creates an empty store.
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{products: make(map[int64]*domain.Product), nextID: 1}
}

// Calls returns the number of store operations invoked so far.
func (m *MockProductStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Seed stores p as-is, keeping its ID. Seeding does not count as a call.
func (m *MockProductStore) Seed(p *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
}

func (m *MockProductStore) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

// Create implements store.ProductStore.
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	m.record()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}
	if err := product.Validate(); err != nil {
		return store.InvalidEntity(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.nextID
	m.nextID++
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

// GetByID implements store.ProductStore.
func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.record()
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// Update implements store.ProductStore.
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	m.record()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}
	if err := product.Validate(); err != nil {
		return store.InvalidEntity(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return store.ErrProductNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

// Delete implements store.ProductStore.
func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	m.record()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// ListByOwner implements store.ProductStore.
func (m *MockProductStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	m.record()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ListPaged implements store.ProductStore.
func (m *MockProductStore) ListPaged(ctx context.Context, limit, offset int) (store.Page[*domain.Product], error) {
	m.record()
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return store.Page[*domain.Product]{
		Items:  window(all, limit, offset),
		Total:  int64(len(all)),
		Limit:  limit,
		Offset: offset,
	}, nil
}
