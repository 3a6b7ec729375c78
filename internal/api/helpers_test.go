package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/storefront-api/internal/api"
	"github.com/phrazzld/storefront-api/internal/api/middleware"
	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/config"
	"github.com/phrazzld/storefront-api/internal/platform/memory"
	"github.com/phrazzld/storefront-api/internal/service"
	"github.com/phrazzld/storefront-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

// newTestRouter wires the full handler stack over in-memory stores.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	authCfg := config.AuthConfig{
		JWTSecret:                   "a-test-secret-that-is-at-least-32-bytes",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60,
		BcryptCost:                  4,
	}
	jwtService, err := auth.NewJWTService(authCfg)
	require.NoError(t, err)

	productStore := memory.NewProductStore(nil)
	userStore := memory.NewUserStore(authCfg.BcryptCost, nil).WithProducts(productStore)

	userService := service.NewUserService(userStore, nil)
	productService := service.NewProductService(productStore, userStore, nil)

	handlers := api.Handlers{
		Auth:     api.NewAuthHandler(auth.NewAuthenticator(userStore, jwtService, auth.NewBcryptVerifier())),
		Users:    api.NewUserHandler(userService),
		Products: api.NewProductHandler(productService),
	}

	r := chi.NewRouter()
	handlers.Mount(r, middleware.NewAuthMiddleware(jwtService).Authenticate)
	r.Method(http.MethodGet, "/health", api.NewHealthHandler(userService, productService))
	return r
}

// do sends a JSON request. body may be nil, a string of raw JSON, or any
// value to marshal.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decode[shared.ErrorResponse](t, rec)
}

// registerAndLogin creates a user and returns it with a fresh token pair.
func registerAndLogin(t *testing.T, h http.Handler, name, email string) (api.UserResponse, api.AuthResponse) {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/users", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[api.UserResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return user, decode[api.AuthResponse](t, rec)
}

func createProduct(t *testing.T, h http.Handler, token string, body map[string]any) api.ProductResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.ProductResponse](t, rec)
}
