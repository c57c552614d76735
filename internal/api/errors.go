package api

import (
	"fmt"
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error.
// It must not write a response when it returns a non-nil error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn into an http.HandlerFunc. A returned error is classified
// and written by c exactly once.
func Handle(c *apperr.Classifier, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			c.Respond(w, r, err)
		}
	}
}

// NotFoundHandler answers unknown routes with a 404 envelope.
func NotFoundHandler(c *apperr.Classifier) http.HandlerFunc {
	return Handle(c, func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NotFound(fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path), nil)
	})
}

// MethodNotAllowedHandler answers known routes called with the wrong method.
func MethodNotAllowedHandler(c *apperr.Classifier) http.HandlerFunc {
	return Handle(c, func(w http.ResponseWriter, r *http.Request) error {
		return apperr.WithStatus(http.StatusMethodNotAllowed,
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), nil)
	})
}

// Recoverer turns a panic further down the chain into a classified 500
// envelope. http.ErrAbortHandler is re-raised so net/http can abort the
// connection.
func Recoverer(c *apperr.Classifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				c.Respond(w, r, apperr.Internal(apperr.MsgInternal, fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
