package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hyeonm/finmart-api/internal/config"
	"github.com/hyeonm/finmart-api/internal/platform/postgres"
	"github.com/hyeonm/finmart-api/internal/service"
	"github.com/hyeonm/finmart-api/internal/service/auth"
	"github.com/hyeonm/finmart-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	memberStore        store.MemberStore
	searchHistoryStore store.SearchHistoryStore
	cartItemStore      store.CartItemStore
	productStore       store.ProductStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	passwordHasher    auth.PasswordHasher
	memberService     service.MemberService
	memberInfoService service.MemberInfoService
	cartService       service.CartService
	productService    service.ProductService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password helpers
	app.passwordVerifier = auth.NewBcryptVerifier()
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	// Initialize stores
	app.memberStore = postgres.NewPostgresMemberStore(db, logger, cfg.Auth.BCryptCost)
	app.searchHistoryStore = postgres.NewPostgresSearchHistoryStore(db, logger)
	app.cartItemStore = postgres.NewPostgresCartItemStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)

	// Initialize member service
	app.memberService = service.NewMemberService(
		app.memberStore,
		db,
		app.passwordVerifier,
		app.passwordHasher,
		logger,
	)

	// Create required adapters
	memberRepoAdapter := service.NewMemberRepositoryAdapter(app.memberStore, app.db)
	historyRepoAdapter := service.NewSearchHistoryRepositoryAdapter(app.searchHistoryStore, app.db)

	// Initialize member info service
	app.memberInfoService, err = service.NewMemberInfoService(
		memberRepoAdapter,
		historyRepoAdapter,
		app.passwordVerifier,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create member info service: %w", err)
	}

	// Initialize cart service. The cart and product stores satisfy the
	// service repository interfaces directly.
	app.cartService, err = service.NewCartService(
		app.cartItemStore,
		app.productStore,
		memberRepoAdapter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart service: %w", err)
	}

	// Initialize product service
	app.productService = service.NewProductService(app.productStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
