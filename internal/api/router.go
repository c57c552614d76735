package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stockroom-dev/stockroom-api/internal/api/middleware"
	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/service"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
)

// RouterDeps are the collaborators the HTTP surface needs.
type RouterDeps struct {
	Accounts   service.AccountService
	Products   service.ProductService
	JWTService auth.JWTService
	Classifier *apperr.Classifier
	Logger     *slog.Logger

	// HealthCheck reports dependency health for GET /health. Optional.
	HealthCheck func(ctx context.Context) error
}

// NewRouter builds the chi router with every route and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	c := deps.Classifier
	if c == nil {
		c = apperr.NewClassifier(false, log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware(log))
	r.Use(middleware.RequestLogger)
	r.Use(Recoverer(c))

	r.NotFound(NotFoundHandler(c))
	r.MethodNotAllowed(MethodNotAllowedHandler(c))

	authHandler := NewAuthHandler(deps.Accounts)
	accountHandler := NewAccountHandler(deps.Accounts)
	productHandler := NewProductHandler(deps.Products)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService)

	r.Get("/health", healthHandler(deps.HealthCheck, log))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/register", Handle(c, authHandler.Register))
		r.Post("/auth/login", Handle(c, authHandler.Login))
		r.Get("/products", Handle(c, productHandler.List))
		r.Get("/products/{id}", Handle(c, productHandler.Get))

		// Guarded
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", Handle(c, authHandler.Me))

			r.Get("/users", Handle(c, accountHandler.List))
			r.Get("/users/{id}", Handle(c, accountHandler.Get))
			r.Put("/users/{id}", Handle(c, accountHandler.Update))
			r.Delete("/users/{id}", Handle(c, accountHandler.Delete))

			r.Post("/products", Handle(c, productHandler.Create))
			r.Get("/products/mine", Handle(c, productHandler.ListMine))
			r.Put("/products/{id}", Handle(c, productHandler.Update))
			r.Delete("/products/{id}", Handle(c, productHandler.Delete))
		})
	})

	return r
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func healthHandler(check func(ctx context.Context) error, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Warn("health check failed", slog.String("error", err.Error()))
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		shared.RespondWithJSON(w, r, code, healthResponse{Status: status, Timestamp: time.Now().UTC()})
	}
}
