package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/storefront-api/internal/config"
	"github.com/phrazzld/storefront-api/internal/platform/memory"
	"github.com/phrazzld/storefront-api/internal/platform/postgres"
	"github.com/phrazzld/storefront-api/internal/service"
	"github.com/phrazzld/storefront-api/internal/service/auth"
	"github.com/phrazzld/storefront-api/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB // nil for the memory backend

	userStore    store.UserStore
	productStore store.ProductStore

	userService    service.UserService
	productService service.ProductService

	jwtService    *auth.HMACJWTService
	authenticator *auth.Authenticator
}

// newApplication opens the configured backend and wires stores, services
// and auth. The postgres backend is migrated before use.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	app.userService = service.NewUserService(app.userStore, logger)
	app.productService = service.NewProductService(app.productStore, app.userStore, logger)
	app.authenticator = auth.NewAuthenticator(app.userStore, jwtService, auth.NewBcryptVerifier())

	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config

	if !cfg.Database.UsesPostgres() {
		app.logger.Info("using in-memory storage")
		products := memory.NewProductStore(app.logger)
		app.userStore = memory.NewUserStore(cfg.Auth.BcryptCost, app.logger).WithProducts(products)
		app.productStore = products
		return nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db
	app.logger.Info("Database connection established")

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(migrateCtx, db, app.logger); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.userStore = postgres.NewUserStore(db, cfg.Auth.BcryptCost, app.logger)
	app.productStore = postgres.NewProductStore(db, app.logger)
	return nil
}

// finishMigrateOnly reports the outcome of a -migrate-only run and releases
// the database. The memory driver has no schema to migrate.
func (app *application) finishMigrateOnly() {
	if app.db == nil {
		app.logger.Info("memory driver has no migrations to apply, exiting",
			"database_driver", app.config.Database.Driver)
	} else {
		app.logger.Info("migrations applied, exiting")
	}
	app.cleanup()
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
	app.db = nil
}
