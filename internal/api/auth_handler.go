package api

import (
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/service"
)

// AuthHandler handles registration, login and the current-account lookup.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req RegisterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	res, err := h.accounts.Register(r.Context(), req.toInput())
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusCreated, "Account registered successfully", res)
	return nil
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		return err
	}

	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Login successful", res)
	return nil
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) error {
	id, err := requestorID(r)
	if err != nil {
		return err
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondOK(w, r, http.StatusOK, "Account retrieved successfully", account)
	return nil
}
