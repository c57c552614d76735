package domain

import (
	"math"
	"strings"
	"time"
)

// MaxPrice is the largest price representable by the DECIMAL(10,2) column.
const MaxPrice = 99999999.99

// Product is an item owned by a single account. Only the owner may change
// or delete it.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	OwnerID     int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductPatch carries the optional fields of a product update.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
}

// NewProduct creates a Product owned by ownerID and validates it.
func NewProduct(ownerID int64, name, description string, price float64, stock int, imageURL string) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       roundCents(price),
		Stock:       stock,
		ImageURL:    strings.TrimSpace(imageURL),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.OwnerID <= 0 {
		return NewValidationError("userId", "must reference an account", ErrInvalidID)
	}
	if p.Name == "" {
		return NewValidationError("name", "is required", nil)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return NewValidationError("price", "must be a number", nil)
	}
	if p.Price < 0 {
		return NewValidationError("price", "must be greater than or equal to 0", nil)
	}
	if p.Price > MaxPrice {
		return NewValidationError("price", "is too large", nil)
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "must be greater than or equal to 0", nil)
	}
	return nil
}

// Apply copies the non-nil fields of patch onto the product and validates
// the result. The product is left unchanged when validation fails.
func (p *Product) Apply(patch ProductPatch) error {
	updated := *p
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Price != nil {
		updated.Price = roundCents(*patch.Price)
	}
	if patch.Stock != nil {
		updated.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		updated.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*p = updated
	return nil
}

func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
