package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		production  bool
		wantMessage string
	}{
		{name: "development", production: false, wantMessage: apperr.MsgInternal},
		{name: "production", production: true, wantMessage: http.StatusText(http.StatusInternalServerError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logs := testutils.NewTestSlogHandler()
			c := apperr.NewClassifier(tt.production, logs.Logger())
			boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("nil map write at 10.0.0.7")
			})

			rec := httptest.NewRecorder()
			Recoverer(c)(boom).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

			env := testutils.AssertFailure(t, rec, http.StatusInternalServerError, tt.wantMessage)
			assert.Equal(t, "internal server error", env.Error)
			assert.NotContains(t, rec.Body.String(), "10.0.0.7")

			logged := logs.WithMessage("API error response")
			require.Len(t, logged, 1)
			assert.Equal(t, "ERROR", logged[0]["level"])
			assert.Contains(t, logged[0]["error"], "panic: nil map write")
		})
	}
}

func TestRecoverer_PassesThrough(t *testing.T) {
	t.Parallel()

	c := apperr.NewClassifier(false, testutils.NewTestSlogHandler().Logger())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	Recoverer(c)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverer_ReraisesAbortHandler(t *testing.T) {
	t.Parallel()

	c := apperr.NewClassifier(false, testutils.NewTestSlogHandler().Logger())
	abort := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Recoverer(c)(abort).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMethodNotAllowedHandler_Classified(t *testing.T) {
	t.Parallel()

	logs := testutils.NewTestSlogHandler()
	c := apperr.NewClassifier(false, logs.Logger())

	rec := httptest.NewRecorder()
	MethodNotAllowedHandler(c).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/products/5", nil))

	env := testutils.AssertFailure(t, rec, http.StatusMethodNotAllowed, "Method PATCH not allowed for /api/products/5")
	assert.Equal(t, "method not allowed", env.Error)

	logged := logs.WithMessage("API error response")
	require.Len(t, logged, 1)
	assert.Equal(t, int64(http.StatusMethodNotAllowed), logged[0]["status_code"])
}
