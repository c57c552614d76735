package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/service"
)

// requestorID returns the authenticated account ID. Guarded routes always
// have one; reaching this without it is a wiring error reported as 401.
func requestorID(r *http.Request) (int64, error) {
	id, ok := shared.IdentityFrom(r.Context())
	if !ok || id.AccountID() <= 0 {
		return 0, apperr.Unauthenticated("Authentication required", nil)
	}
	return id.AccountID(), nil
}

// pathID parses a positive integer path parameter. Invalid values fail
// before any store is touched.
func pathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// pageParams reads limit and offset query parameters.
func pageParams(r *http.Request) (limit, offset int, err error) {
	limit, err = queryInt(r, "limit", service.DefaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err = queryInt(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 || limit > service.MaxPageLimit {
		return 0, 0, domain.NewValidationError("limit", "must be between 1 and 100", nil)
	}
	if offset < 0 {
		return 0, 0, domain.NewValidationError("offset", "must not be negative", nil)
	}
	return limit, offset, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", nil)
	}
	return v, nil
}

// decodeAndValidate decodes the JSON body into req and validates its tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) error {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		return apperr.BadRequest("Invalid request format", err)
	}
	return shared.ValidateRequest(req)
}
