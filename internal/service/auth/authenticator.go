package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
	"github.com/phrazzld/storefront-api/internal/store"
)

// UserLookup is the subset of user persistence Authenticator needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Authenticator exchanges credentials or refresh tokens for token pairs.
type Authenticator struct {
	users    UserLookup
	tokens   JWTService
	verifier PasswordVerifier
}

// NewAuthenticator wires an Authenticator.
func NewAuthenticator(users UserLookup, tokens JWTService, verifier PasswordVerifier) *Authenticator {
	return &Authenticator{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
	}
}

// Login verifies email and password and issues a token pair.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			_ = a.verifier.Compare(dummyHash(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return a.issue(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair. The user must
// still exist.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := a.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return a.issue(ctx, claims.UserID)
}

func (a *Authenticator) issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := a.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// ExpiresAt reports the exp claim actually signed into the access token.
	claims, err := a.tokens.ValidateToken(ctx, access)
	if err != nil {
		return nil, fmt.Errorf("failed to read issued access token: %w", err)
	}

	refresh, err := a.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    claims.ExpiresAt.UTC(),
	}, nil
}
