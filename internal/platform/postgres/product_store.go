package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"gorm.io/gorm"
)

type productModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price;type:numeric(10,2)"`
	Stock       int       `gorm:"column:stock"`
	ImageURL    string    `gorm:"column:image_url"`
	UserID      int64     `gorm:"column:user_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func productModelFromDomain(p *domain.Product) productModel {
	return productModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		UserID:      p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m productModel) toDomain() *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		OwnerID:     m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// PostgresProductStore implements store.ProductStore on gorm.
type PostgresProductStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresProductStore creates a new product store.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db *gorm.DB, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// Create implements store.ProductStore.Create.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return store.InvalidEntity(err)
	}

	row := productModelFromDomain(product)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		mapped := MapError(err)
		s.logger.Debug("product insert failed",
			slog.Int64("owner_id", product.OwnerID),
			slog.String("error_type", errorKind(mapped)))
		return mapped
	}

	product.ID = row.ID
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row productModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrProductNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// Update implements store.ProductStore.Update.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return store.InvalidEntity(err)
	}

	result := s.db.WithContext(ctx).
		Model(&productModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"image_url":   product.ImageURL,
			"updated_at":  product.UpdatedAt.UTC(),
		})
	return checkRowsAffected(result, store.ErrProductNotFound)
}

// Delete implements store.ProductStore.Delete.
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&productModel{})
	return checkRowsAffected(result, store.ErrProductNotFound)
}

// ListByOwner implements store.ProductStore.ListByOwner.
func (s *PostgresProductStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	var rows []productModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, MapError(err)
	}

	items := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

// ListPaged implements store.ProductStore.ListPaged.
func (s *PostgresProductStore) ListPaged(ctx context.Context, limit, offset int) (store.Page[*domain.Product], error) {
	page := store.Page[*domain.Product]{Limit: limit, Offset: offset}

	if err := s.db.WithContext(ctx).Model(&productModel{}).Count(&page.Total).Error; err != nil {
		return page, MapError(err)
	}

	var rows []productModel
	if err := s.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return page, MapError(err)
	}

	page.Items = make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		page.Items = append(page.Items, row.toDomain())
	}
	return page, nil
}
