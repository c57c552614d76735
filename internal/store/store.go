package store

import (
	"context"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
)

// Page is one slice of a paged listing together with the total row count.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account and assigns its ID.
	// The account must already carry a PasswordHash.
	// Returns ErrEmailExists / ErrUserNameExists on uniqueness violations and
	// ErrInvalidEntity when field validation fails.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByEmail retrieves an account by its (normalized) email address.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Update writes every mutable field of the account.
	// Returns ErrAccountNotFound, ErrUserNameExists or ErrInvalidEntity.
	Update(ctx context.Context, account *domain.Account) error

	// Delete removes an account and, through the foreign key, its products.
	// Returns ErrAccountNotFound if the account does not exist.
	Delete(ctx context.Context, id int64) error

	// ListPaged returns accounts ordered by ID.
	ListPaged(ctx context.Context, limit, offset int) (Page[*domain.Account], error)
}

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	// Create saves a new product and assigns its ID.
	// Returns ErrInvalidEntity when field validation fails or the owner
	// does not exist.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Update writes every mutable field of the product.
	// Returns ErrProductNotFound or ErrInvalidEntity.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// ListByOwner returns every product owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error)

	// ListPaged returns products ordered by ID.
	ListPaged(ctx context.Context, limit, offset int) (Page[*domain.Product], error)
}
