package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
	"github.com/phrazzld/storefront-api/internal/redact"
	"github.com/phrazzld/storefront-api/internal/service"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/samber/lo"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	users    service.UserService
	products service.ProductService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(users service.UserService, products service.ProductService) *HealthHandler {
	return &HealthHandler{users: users, products: products}
}

// ServeHTTP reports status "UP" with user and product counts. A failing
// count turns the response into a 503 with status "DOWN".
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.check(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("health check failed", "error", redact.Error(err))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "DOWN"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *HealthHandler) check(ctx context.Context) (HealthResponse, error) {
	users, err := h.users.CountUsers(ctx, store.UserFilter{})
	if err != nil {
		return HealthResponse{}, err
	}
	active, err := h.users.CountUsers(ctx, store.UserFilter{Active: lo.ToPtr(true)})
	if err != nil {
		return HealthResponse{}, err
	}
	summary, err := h.products.InventorySummary(ctx, store.ProductFilter{})
	if err != nil {
		return HealthResponse{}, err
	}

	return HealthResponse{
		Status:           "UP",
		UsersCount:       users,
		ActiveUsersCount: active,
		ProductsCount:    summary.Products,
	}, nil
}
