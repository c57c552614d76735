package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
)

// MockAccountStore is an in-memory store.AccountStore. Function fields
// override the map-backed defaults.
type MockAccountStore struct {
	CreateFn     func(ctx context.Context, account *domain.Account) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	UpdateFn     func(ctx context.Context, account *domain.Account) error
	DeleteFn     func(ctx context.Context, id int64) error

	mu       sync.Mutex
	accounts map[int64]*domain.Account
	nextID   int64
	calls    int
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// NewMockAccountStore creates an empty store.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{accounts: make(map[int64]*domain.Account), nextID: 1}
}

// Calls returns the number of store operations invoked so far.
func (m *MockAccountStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Len returns the number of stored accounts.
func (m *MockAccountStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

func (m *MockAccountStore) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

// Create implements store.AccountStore.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	m.record()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	if err := account.Validate(); err != nil {
		return store.InvalidEntity(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return store.ErrEmailExists
		}
		if sameUserName(existing.UserName, account.UserName) {
			return store.ErrUserNameExists
		}
	}
	account.ID = m.nextID
	m.nextID++
	stored := *account
	stored.Password = ""
	m.accounts[account.ID] = &stored
	return nil
}

// GetByID implements store.AccountStore.
func (m *MockAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	m.record()
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

// GetByEmail implements store.AccountStore.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.record()
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// Update implements store.AccountStore.
func (m *MockAccountStore) Update(ctx context.Context, account *domain.Account) error {
	m.record()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, account)
	}
	if err := account.Validate(); err != nil {
		return store.InvalidEntity(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return store.ErrAccountNotFound
	}
	for id, existing := range m.accounts {
		if id != account.ID && sameUserName(existing.UserName, account.UserName) {
			return store.ErrUserNameExists
		}
	}
	stored := *account
	stored.Password = ""
	m.accounts[account.ID] = &stored
	return nil
}

// Delete implements store.AccountStore.
func (m *MockAccountStore) Delete(ctx context.Context, id int64) error {
	m.record()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return store.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// ListPaged implements store.AccountStore.
func (m *MockAccountStore) ListPaged(ctx context.Context, limit, offset int) (store.Page[*domain.Account], error) {
	m.record()
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		cp := *a
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return store.Page[*domain.Account]{
		Items:  window(all, limit, offset),
		Total:  int64(len(all)),
		Limit:  limit,
		Offset: offset,
	}, nil
}

func sameUserName(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
