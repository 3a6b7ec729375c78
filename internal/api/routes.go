package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Products *ProductHandler
}

// Mount registers every /api route on r. Mutating user and product routes
// are wrapped with authenticate.
func (h Handlers) Mount(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.Refresh)

		r.Post("/users", h.Users.Create)
		r.Get("/users", h.Users.List)
		r.Get("/users/{id}", h.Users.Get)

		r.Get("/products", h.Products.List)
		r.Get("/products/summary", h.Products.Summary)
		r.Get("/products/{id}", h.Products.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Patch("/users/{id}", h.Users.Update)
			r.Post("/users/{id}/deactivate", h.Users.Deactivate)
			r.Post("/users/{id}/activate", h.Users.Activate)
			r.Delete("/users/{id}", h.Users.Delete)

			r.Post("/products", h.Products.Create)
			r.Patch("/products/{id}", h.Products.Update)
			r.Post("/products/{id}/stock", h.Products.AdjustStock)
			r.Delete("/products/{id}", h.Products.Delete)
		})
	})
}
