package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/storefront-api/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	r := newTestRouter(t)
	user, _ := registerAndLogin(t, r, "Ada", "ada@example.com")

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{"success", api.LoginRequest{Email: "ADA@example.com", Password: testPassword}, http.StatusOK, ""},
		{"wrong password", api.LoginRequest{Email: "ada@example.com", Password: "wrong-password"}, http.StatusUnauthorized, "Invalid email or password"},
		{"unknown email", api.LoginRequest{Email: "nobody@example.com", Password: testPassword}, http.StatusUnauthorized, "Invalid email or password"},
		{"missing password", map[string]any{"email": "ada@example.com"}, http.StatusBadRequest, "Validation failed"},
		{"malformed", `{"email":}`, http.StatusBadRequest, "Invalid request format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
				return
			}

			resp := decode[api.AuthResponse](t, rec)
			assert.Equal(t, user.ID, resp.UserID)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	r := newTestRouter(t)
	user, tokens := registerAndLogin(t, r, "Ada", "ada@example.com")

	rec := do(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[api.AuthResponse](t, rec)
	assert.Equal(t, user.ID, refreshed.UserID)

	// The new access token works on a protected route.
	rec = do(t, r, http.MethodPatch, "/api/users/"+user.ID.String(), refreshed.AccessToken, map[string]any{"name": "Ada L"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("access token is not a refresh token", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		rec := do(t, r, http.MethodPatch, "/api/users/"+user.ID.String(), tokens.RefreshToken, map[string]any{"name": "X"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: "not.a.jwt"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeError(t, rec).Error)
	})

	t.Run("deleted user", func(t *testing.T) {
		rec := do(t, r, http.MethodDelete, "/api/users/"+user.ID.String(), tokens.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
