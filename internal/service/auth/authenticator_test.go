package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUsers is a map-backed UserLookup.
type fakeUsers struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[domain.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *fakeUsers, *domain.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", HashedPassword: string(hash)}
	users := &fakeUsers{users: map[string]*domain.User{user.Email: user}}

	tokens, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	return NewAuthenticator(users, tokens, NewBcryptVerifier()), users, user
}

func TestAuthenticator_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		a, _, user := newTestAuthenticator(t)

		pair, err := a.Login(ctx, "ALICE@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, pair.UserID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, time.Minute)

		claims, err := a.tokens.ValidateToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		a, _, _ := newTestAuthenticator(t)
		_, err := a.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		a, _, _ := newTestAuthenticator(t)
		_, err := a.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		a, users, _ := newTestAuthenticator(t)
		users.err = errors.New("database down")
		_, err := a.Login(ctx, "alice@example.com", "supersecret")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticator_ExpiresAtMatchesSignedToken(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	a, _, user := newTestAuthenticator(t)
	tokens, err := NewJWTService(testAuthConfig(), WithTimeFunc(func() time.Time { return issued }))
	require.NoError(t, err)
	a.tokens = tokens

	pair, err := a.Login(ctx, user.Email, "supersecret")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, issued.Add(time.Hour).Equal(pair.ExpiresAt))
	assert.Equal(t, claims.ExpiresAt.Unix(), pair.ExpiresAt.Unix())
	assert.Equal(t, time.UTC, pair.ExpiresAt.Location())
}

func TestAuthenticator_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues new pair", func(t *testing.T) {
		a, _, user := newTestAuthenticator(t)
		pair, err := a.Login(ctx, user.Email, "supersecret")
		require.NoError(t, err)

		refreshed, err := a.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, refreshed.UserID)
	})

	t.Run("access token rejected", func(t *testing.T) {
		a, _, user := newTestAuthenticator(t)
		pair, err := a.Login(ctx, user.Email, "supersecret")
		require.NoError(t, err)

		_, err = a.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("deleted user", func(t *testing.T) {
		a, users, user := newTestAuthenticator(t)
		pair, err := a.Login(ctx, user.Email, "supersecret")
		require.NoError(t, err)
		delete(users.users, user.Email)

		_, err = a.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
