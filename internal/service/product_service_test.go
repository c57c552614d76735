package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/mocks"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededProducts(t *testing.T) *mocks.MockProductStore {
	t.Helper()
	ps := mocks.NewMockProductStore()
	ps.Seed(&domain.Product{ID: 5, Name: "Pen", Price: 1.5, Stock: 10, OwnerID: 1})
	ps.Seed(&domain.Product{ID: 6, Name: "Ink", Price: 3, Stock: 2, OwnerID: 2})
	return ps
}

func TestProductService_Create(t *testing.T) {
	t.Parallel()

	ps := mocks.NewMockProductStore()
	svc := NewProductService(ps, nil)

	p, err := svc.Create(context.Background(), 7, ProductInput{Name: " Pen ", Price: 1.499, Stock: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Pen", p.Name)
	assert.Equal(t, 1.5, p.Price)
	assert.Equal(t, int64(7), p.OwnerID)

	_, err = svc.Create(context.Background(), 7, ProductInput{Name: "", Price: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), 7, ProductInput{Name: "Pen", Price: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductService_Update(t *testing.T) {
	t.Parallel()

	newName := "Fountain pen"

	tests := []struct {
		name      string
		requestor int64
		id        int64
		wantErr   func(t *testing.T, err error)
	}{
		{
			name:      "owner updates",
			requestor: 1,
			id:        5,
		},
		{
			name:      "non-owner is denied",
			requestor: 2,
			id:        5,
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsCategory(err, apperr.CategoryOwnershipDenied))
			},
		},
		{
			name:      "missing product reports not found before ownership",
			requestor: 2,
			id:        99,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, store.ErrProductNotFound)
				assert.False(t, apperr.IsCategory(err, apperr.CategoryOwnershipDenied))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ps := seededProducts(t)
			svc := NewProductService(ps, nil)

			updated, err := svc.Update(context.Background(), tt.requestor, tt.id, domain.ProductPatch{Name: &newName})
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)

				if tt.id == 5 {
					p, getErr := ps.GetByID(context.Background(), 5)
					require.NoError(t, getErr)
					assert.Equal(t, "Pen", p.Name, "denied update leaves the product unchanged")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, newName, updated.Name)
		})
	}
}

func TestProductService_Delete(t *testing.T) {
	t.Parallel()

	ps := seededProducts(t)
	svc := NewProductService(ps, nil)

	err := svc.Delete(context.Background(), 2, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsCategory(err, apperr.CategoryOwnershipDenied))

	_, err = svc.Get(context.Background(), 5)
	require.NoError(t, err, "product still retrievable after denied delete")

	require.NoError(t, svc.Delete(context.Background(), 1, 5))
	_, err = svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(context.Background(), 1, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductService_OrderOfChecks(t *testing.T) {
	t.Parallel()

	// Denied requests never reach the mutating store call.
	ps := &mocks.TestifyMockProductStore{}
	ps.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Product{ID: 5, Name: "Pen", OwnerID: 1}, nil)

	svc := NewProductService(ps, nil)

	err := svc.Delete(context.Background(), 2, 5)
	require.Error(t, err)
	_, err = svc.Update(context.Background(), 2, 5, domain.ProductPatch{})
	require.Error(t, err)

	ps.AssertNumberOfCalls(t, "GetByID", 2)
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	ps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_List(t *testing.T) {
	t.Parallel()

	ps := seededProducts(t)
	svc := NewProductService(ps, nil)

	page, err := svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(5), page.Items[0].ID)

	for _, bad := range [][2]int{{0, 0}, {101, 0}, {10, -1}} {
		_, err := svc.List(context.Background(), bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidPage)
	}

	mine, err := svc.ListMine(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ink", mine[0].Name)
}

func TestProductService_StoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	ps := mocks.NewMockProductStore()
	ps.GetByIDFn = func(ctx context.Context, id int64) (*domain.Product, error) { return nil, boom }

	_, err := NewProductService(ps, nil).Get(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
