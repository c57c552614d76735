package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/mocks"
	"github.com/stockroom-dev/stockroom-api/internal/service"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"github.com/stockroom-dev/stockroom-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler  http.Handler
	tokens   auth.JWTService
	accounts *mocks.MockAccountStore
	products *mocks.MockProductStore
	logs     *testutils.TestSlogHandler
}

func newTestEnv(t *testing.T, production bool) *testEnv {
	t.Helper()

	logs := testutils.NewTestSlogHandler()
	log := logs.Logger()
	tokens := testutils.NewTestJWTService(t, nil)

	accounts := mocks.NewMockAccountStore()
	products := mocks.NewMockProductStore()

	h := NewRouter(RouterDeps{
		Accounts:   service.NewAccountService(accounts, tokens, &mocks.MockPasswordHasher{}, log),
		Products:   service.NewProductService(products, log),
		JWTService: tokens,
		Classifier: apperr.NewClassifier(production, log),
		Logger:     log,
	})

	return &testEnv{handler: h, tokens: tokens, accounts: accounts, products: products, logs: logs}
}

func (e *testEnv) token(t *testing.T, accountID int64) string {
	t.Helper()
	return testutils.GenerateToken(t, e.tokens, accountID)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, testutils.Envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, testutils.NewRequest(t, method, path, token, body))

	var env testutils.Envelope
	if rec.Body.Len() > 0 {
		env = testutils.DecodeEnvelope(t, rec)
	}
	return rec, env
}

func TestCreateProduct_NumericStrings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	rec, body := env.do(t, http.MethodPost, "/api/products", env.token(t, 1),
		`{"name":"Pen","price":"1.50","stock":"10"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, body.Success)

	var p domain.Product
	testutils.DecodeData(t, body, &p)
	assert.Equal(t, 1.5, p.Price)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, int64(1), p.OwnerID)
}

func TestCreateProduct_IgnoresClientOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	rec, body := env.do(t, http.MethodPost, "/api/products", env.token(t, 1),
		`{"name":"Pen","price":2,"userId":99,"id":500}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p domain.Product
	testutils.DecodeData(t, body, &p)
	assert.Equal(t, int64(1), p.OwnerID)
	assert.NotEqual(t, int64(500), p.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"missing name", `{"price":1,"stock":1}`, "name: is required"},
		{"missing price", `{"name":"Pen"}`, "price: is required"},
		{"null price", `{"name":"Pen","price":null,"stock":3}`, "price: is required"},
		{"negative price", `{"name":"Pen","price":-1}`, ""},
		{"price not numeric", `{"name":"Pen","price":"abc"}`, ""},
		{"fractional stock", `{"name":"Pen","price":1,"stock":"1.5"}`, ""},
		{"negative stock", `{"name":"Pen","price":1,"stock":-2}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, false)
			rec, body := env.do(t, http.MethodPost, "/api/products", env.token(t, 1), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, apperr.MsgValidation, body.Message)
			assert.NotEmpty(t, body.Error)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
			assert.Zero(t, env.products.Calls(), "store is never reached")
		})
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		t.Run(id, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, false)
			rec, body := env.do(t, http.MethodGet, "/api/products/"+id, "", nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			assert.Zero(t, env.products.Calls(), "no persistence call for an invalid id")
		})
	}
}

func TestDeleteProduct_NonOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	env.products.Seed(&domain.Product{ID: 5, Name: "Pen", Price: 1.5, Stock: 10, OwnerID: 1})

	rec, body := env.do(t, http.MethodDelete, "/api/products/5", env.token(t, 2), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, service.MsgDeleteProductFailed, body.Message)

	rec, body = env.do(t, http.MethodGet, "/api/products/5", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "product still retrievable")
	assert.True(t, body.Success)

	rec, _ = env.do(t, http.MethodPut, "/api/products/5", env.token(t, 2), `{"name":"Stolen"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, body = env.do(t, http.MethodGet, "/api/products/5", "", nil)
	var p domain.Product
	testutils.DecodeData(t, body, &p)
	assert.Equal(t, "Pen", p.Name)
}

func TestMutateMissingProduct_NotFoundBeforeOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	rec, body := env.do(t, http.MethodDelete, "/api/products/77", env.token(t, 2), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", body.Message)
}

func TestOwnerUpdatesAndDeletesProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	tok := env.token(t, 1)
	env.products.Seed(&domain.Product{ID: 5, Name: "Pen", Price: 1.5, Stock: 10, OwnerID: 1})

	rec, body := env.do(t, http.MethodPut, "/api/products/5", tok, `{"price":"2.25","stock":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p domain.Product
	testutils.DecodeData(t, body, &p)
	assert.Equal(t, 2.25, p.Price)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, "Pen", p.Name)

	rec, body = env.do(t, http.MethodGet, "/api/products/mine", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []domain.Product
	testutils.DecodeData(t, body, &mine)
	assert.Len(t, mine, 1)

	rec, _ = env.do(t, http.MethodDelete, "/api/products/5", tok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/products/5", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuardedRoutes_RequireCredential(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)

	expiredTok := testutils.ExpiredToken(t, 1)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/products"},
		{http.MethodGet, "/api/products/mine"},
		{http.MethodPut, "/api/products/5"},
		{http.MethodDelete, "/api/products/5"},
		{http.MethodDelete, "/api/users/1"},
	}

	for _, rt := range routes {
		for _, tok := range []string{"", "garbage", expiredTok} {
			rec, body := env.do(t, rt.method, rt.path, tok, `{"name":"x"}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", rt.method, rt.path)
			assert.False(t, body.Success)
		}
	}
	assert.Zero(t, env.products.Calls())
	assert.Zero(t, env.accounts.Calls())
}

func TestRegisterLoginMe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	creds := map[string]string{"email": "ada@example.com", "password": "correct-horse-battery"}

	rec, body := env.do(t, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reg service.AuthResult
	testutils.DecodeData(t, body, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ada@example.com", reg.Account.Email)
	assert.NotContains(t, string(body.Data), "password", "hash is never serialized")

	rec, body = env.do(t, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.MsgDuplicate, body.Message)
	assert.Equal(t, 1, env.accounts.Len(), "no partial record after duplicate")

	rec, body = env.do(t, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	var login service.AuthResult
	testutils.DecodeData(t, body, &login)

	rec, body = env.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.Account
	testutils.DecodeData(t, body, &me)
	assert.Equal(t, reg.Account.ID, me.ID)

	rec, body = env.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ada@example.com", "password": "wrong-password-xyz"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.MsgInvalidLogin, body.Message)
}

func TestAccountRoutes_SelfOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		rec, _ := env.do(t, http.MethodPost, "/api/auth/register", "",
			map[string]string{"email": email, "password": "correct-horse-battery"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, _ := env.do(t, http.MethodPut, "/api/users/1", env.token(t, 2), `{"firstName":"Mallory"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body := env.do(t, http.MethodPut, "/api/users/1", env.token(t, 1), `{"firstName":"Ada"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a domain.Account
	testutils.DecodeData(t, body, &a)
	assert.Equal(t, "Ada", a.FirstName)

	rec, body = env.do(t, http.MethodGet, "/api/users?limit=1&offset=1", env.token(t, 1), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []domain.Account `json:"items"`
		Total int64            `json:"total"`
	}
	testutils.DecodeData(t, body, &page)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)

	rec, _ = env.do(t, http.MethodGet, "/api/users?limit=500", env.token(t, 1), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)

	rec, body := env.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route GET /api/nope not found", body.Message)
	assert.Equal(t, "not found", body.Error)

	rec, body = env.do(t, http.MethodPatch, "/api/products/5", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, body.Success)
}

func TestProductionMode_HidesDetail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	env.products.GetByIDFn = func(ctx context.Context, id int64) (*domain.Product, error) {
		return nil, errors.New("pq: connection to 10.0.0.3 refused")
	}

	rec, body := env.do(t, http.MethodGet, "/api/products/1", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperr.MsgInternal, body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")

	logged := env.logs.WithMessage("API error response")
	require.Len(t, logged, 1, "classified and logged exactly once")
	assert.Equal(t, "ERROR", logged[0]["level"])
	assert.NotEmpty(t, logged[0]["trace_id"])

	rec, body = env.do(t, http.MethodPost, "/api/products", env.token(t, 1), `{"price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad request", body.Error)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "timestamp")

	failing := NewRouter(RouterDeps{
		HealthCheck: func(ctx context.Context) error { return fmt.Errorf("db down") },
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
