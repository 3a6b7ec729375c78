package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It validates the user and hashes the plaintext password, clearing it
	// from the passed user afterwards.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address, case-insensitively.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users matching filter, ordered by creation
	// time with ties broken by ID.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)

	// Count returns how many users match filter. Pagination is ignored.
	Count(ctx context.Context, filter UserFilter) (int, error)

	// Update replaces an existing user's details, including Active.
	// The caller must provide a complete user including HashedPassword.
	// A non-empty plaintext Password is hashed and replaces HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and every product they own as a single
	// operation: either both are gone or neither is.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
