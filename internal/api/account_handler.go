package api

import (
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/service"
)

// AccountHandler serves /api/users.
type AccountHandler struct {
	accounts service.AccountService
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List handles GET /api/users.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) error {
	limit, offset, err := pageParams(r)
	if err != nil {
		return err
	}

	page, err := h.accounts.List(r.Context(), limit, offset)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Users retrieved successfully", page)
	return nil
}

// Get handles GET /api/users/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "User retrieved successfully", account)
	return nil
}

// Update handles PUT /api/users/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) error {
	requestor, err := requestorID(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req UpdateAccountRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	account, err := h.accounts.Update(r.Context(), requestor, id, req.toPatch())
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "User updated successfully", account)
	return nil
}

// Delete handles DELETE /api/users/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	requestor, err := requestorID(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	if err := h.accounts.Delete(r.Context(), requestor, id); err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "User deleted successfully", nil)
	return nil
}
