package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyeonm/finmart-api/internal/api"
	apiMiddleware "github.com/hyeonm/finmart-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Trace IDs correlate request logs

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.memberService, app.jwtService, app.logger)
	memberHandler := api.NewMemberHandler(app.memberInfoService, app.memberService, app.logger)
	cartHandler := api.NewCartHandler(app.cartService, app.logger)
	productHandler := api.NewProductHandler(app.productService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Product catalog endpoints (public)
		r.Get("/products/{productID}", productHandler.GetProduct)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Member profile endpoints
			r.Get("/members/me", memberHandler.GetProfile)
			r.Put("/members/me", memberHandler.UpdateProfile)
			r.Post("/members/me/close", memberHandler.Close)

			// Recent keyword endpoints
			r.Get("/members/me/keywords", memberHandler.ListKeywords)
			r.Post("/members/me/keywords", memberHandler.AddKeyword)

			// Cart endpoints
			r.Post("/cart/items/{productID}", cartHandler.AddItem)
			r.Get("/cart/items", cartHandler.ListItems)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
