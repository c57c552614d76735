package api

import (
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/service"
)

// ProductHandler serves /api/products.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) error {
	owner, err := requestorID(r)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	product, err := h.products.Create(r.Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusCreated, "Product created successfully", product)
	return nil
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) error {
	limit, offset, err := pageParams(r)
	if err != nil {
		return err
	}

	page, err := h.products.List(r.Context(), limit, offset)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Products retrieved successfully", page)
	return nil
}

// ListMine handles GET /api/products/mine.
func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) error {
	owner, err := requestorID(r)
	if err != nil {
		return err
	}

	products, err := h.products.ListMine(r.Context(), owner)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Products retrieved successfully", products)
	return nil
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Product retrieved successfully", product)
	return nil
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) error {
	requestor, err := requestorID(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	product, err := h.products.Update(r.Context(), requestor, id, req.toPatch())
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Product updated successfully", product)
	return nil
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	requestor, err := requestorID(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	if err := h.products.Delete(r.Context(), requestor, id); err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Product deleted successfully", nil)
	return nil
}
