package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/api"
	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/config"
	"github.com/stockroom-dev/stockroom-api/internal/platform/postgres"
	"github.com/stockroom-dev/stockroom-api/internal/service"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"gorm.io/gorm"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *gorm.DB

	accountStore store.AccountStore
	productStore store.ProductStore

	jwtService     auth.JWTService
	accountService service.AccountService
	productService service.ProductService
	classifier     *apperr.Classifier
}

// newApplication wires the Postgres stores and every service on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *gorm.DB) (*application, error) {
	return newApplicationWithStores(
		cfg, logger, db,
		postgres.NewPostgresAccountStore(db, logger),
		postgres.NewPostgresProductStore(db, logger),
	)
}

// newApplicationWithStores wires services on top of the given stores.
// db may be nil, in which case /health does not ping a database.
func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	accounts store.AccountStore,
	products store.ProductStore,
) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		accountStore: accounts,
		productStore: products,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.accountService = service.NewAccountService(accounts, app.jwtService, hasher, logger)
	app.productService = service.NewProductService(products, logger)
	app.classifier = apperr.NewClassifier(cfg.IsProduction(), logger)

	logger.Info("application initialized",
		slog.Bool("production", cfg.IsProduction()))
	return app, nil
}

// handler builds the HTTP handler for the application.
func (app *application) handler() http.Handler {
	deps := api.RouterDeps{
		Accounts:   app.accountService,
		Products:   app.productService,
		JWTService: app.jwtService,
		Classifier: app.classifier,
		Logger:     app.logger,
	}
	if app.db != nil {
		deps.HealthCheck = func(ctx context.Context) error {
			return postgres.Ping(ctx, app.db)
		}
	}
	return api.NewRouter(deps)
}

// Run serves HTTP until ctx is canceled or the process is signalled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.handler()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := postgres.Close(app.db); err != nil {
		app.logger.Error("error closing database connection", slog.String("error", err.Error()))
	}
	app.logger.Info("application shutdown completed")
}
