package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/storefront-api/internal/api"
	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/service"
	"github.com/phrazzld/storefront-api/internal/service/auth"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest, "Invalid request format"},
		{"validation", domain.NewValidationError("name", "is required", nil), http.StatusBadRequest, "Validation failed"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid token"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"not owned", fmt.Errorf("update: %w", service.ErrNotOwned), http.StatusForbidden, "You do not have permission to modify this resource"},
		{"inactive user", fmt.Errorf("create product: %w", domain.ErrInactiveUser), http.StatusForbidden, "Account is inactive"},
		{"user not found", fmt.Errorf("get: %w", store.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"product not found", store.ErrProductNotFound, http.StatusNotFound, "Product not found"},
		{"email exists", store.ErrEmailExists, http.StatusConflict, "Email already exists"},
		{"sku exists", store.ErrSKUExists, http.StatusConflict, "SKU already exists"},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusConflict, "Insufficient stock"},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
		{"unknown", errors.New("connection refused to 10.0.0.1:5432"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, api.MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, api.GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation error carries fields", func(t *testing.T) {
		ve := &domain.ValidationError{}
		ve.Add("name", "is required")
		ve.Add("price", "must be greater than 0")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		api.HandleAPIError(rec, req, fmt.Errorf("create: %w", ve), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "Validation failed", body.Error)
		assert.Equal(t, ve.Fields, body.Fields)
	})

	t.Run("internal error uses fallback and hides details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		api.HandleAPIError(rec, req, errors.New("pq: password=hunter2 rejected"), "Failed to list users")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "Failed to list users", body.Error)
		assert.Empty(t, body.Fields)
		assert.NotContains(t, rec.Body.String(), "hunter2")
	})

	t.Run("fallback ignored for client errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
		api.HandleAPIError(rec, req, store.ErrUserNotFound, "Failed to get user")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec).Error)
	})
}
