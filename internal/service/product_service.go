package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stockroom-dev/stockroom-api/internal/authz"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
)

// ProductInput carries the fields of a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

// ProductService manages products on behalf of their owners.
type ProductService interface {
	// Create stores a new product owned by ownerID.
	Create(ctx context.Context, ownerID int64, in ProductInput) (*domain.Product, error)

	// Get returns a product by ID.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// List returns one page of all products.
	List(ctx context.Context, limit, offset int) (store.Page[*domain.Product], error)

	// ListMine returns every product owned by ownerID.
	ListMine(ctx context.Context, ownerID int64) ([]*domain.Product, error)

	// Update applies patch to the product if requestorID owns it.
	Update(ctx context.Context, requestorID, id int64, patch domain.ProductPatch) (*domain.Product, error)

	// Delete removes the product if requestorID owns it.
	Delete(ctx context.Context, requestorID, id int64) error
}

type productService struct {
	products store.ProductStore
	logger   *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(products store.ProductStore, logger *slog.Logger) ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &productService{
		products: products,
		logger:   logger.With("component", "product_service"),
	}
}

// Create stores a new product owned by ownerID.
func (s *productService) Create(ctx context.Context, ownerID int64, in ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(ownerID, in.Name, in.Description, in.Price, in.Stock, in.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Debug("product create rejected",
			slog.Int64("owner_id", ownerID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("owner_id", ownerID))
	return product, nil
}

// Get returns a product by ID.
func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return product, nil
}

// List returns one page of all products.
func (s *productService) List(ctx context.Context, limit, offset int) (store.Page[*domain.Product], error) {
	if err := checkPage(limit, offset); err != nil {
		return store.Page[*domain.Product]{}, err
	}
	page, err := s.products.ListPaged(ctx, limit, offset)
	if err != nil {
		return store.Page[*domain.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

// ListMine returns every product owned by ownerID.
func (s *productService) ListMine(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	products, err := s.products.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for owner: %w", err)
	}
	return products, nil
}

// Update applies patch to the product if requestorID owns it.
func (s *productService) Update(
	ctx context.Context,
	requestorID, id int64,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	product, err := s.loadOwned(ctx, requestorID, id, MsgUpdateProductFailed)
	if err != nil {
		return nil, err
	}

	if err := product.Apply(patch); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("product updated",
		slog.Int64("product_id", id),
		slog.Int64("owner_id", requestorID))
	return product, nil
}

// Delete removes the product if requestorID owns it.
func (s *productService) Delete(ctx context.Context, requestorID, id int64) error {
	if _, err := s.loadOwned(ctx, requestorID, id, MsgDeleteProductFailed); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("product deleted",
		slog.Int64("product_id", id),
		slog.Int64("owner_id", requestorID))
	return nil
}

// loadOwned fetches the product and checks ownership, in that order.
func (s *productService) loadOwned(ctx context.Context, requestorID, id int64, action string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to load product for mutation",
				slog.Int64("product_id", id),
				slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	if err := authz.RequireOwner(requestorID, product.OwnerID, action); err != nil {
		s.logger.Warn("ownership check denied",
			slog.Int64("product_id", id),
			slog.Int64("requestor_id", requestorID),
			slog.Int64("owner_id", product.OwnerID))
		return nil, err
	}
	return product, nil
}
