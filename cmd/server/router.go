package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/storefront-api/internal/api"
	"github.com/phrazzld/storefront-api/internal/api/middleware"
)

// routes builds the HTTP router with all middleware and handlers.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	handlers := api.Handlers{
		Auth:     api.NewAuthHandler(app.authenticator),
		Users:    api.NewUserHandler(app.userService),
		Products: api.NewProductHandler(app.productService),
	}
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)
	handlers.Mount(r, authMiddleware.Authenticate)

	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.userService, app.productService))

	return r
}
