package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/store"
)

// CreateUserInput carries the fields needed to register a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// UserService provides user-related operations.
type UserService interface {
	// CreateUser registers a new user. The password is hashed by the store.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers returns a page of users matching filter, ordered by
	// creation time.
	ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, error)

	// CountUsers returns how many users match filter.
	CountUsers(ctx context.Context, filter store.UserFilter) (int, error)

	// UpdateUser applies a partial update. Only the user themself may do so.
	UpdateUser(ctx context.Context, actorID, userID uuid.UUID, update domain.UserUpdate) (*domain.User, error)

	// DeactivateUser marks the account inactive without removing it. Only
	// the user themself may do so.
	DeactivateUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error)

	// ActivateUser reverses DeactivateUser. Only the user themself may do so.
	ActivateUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error)

	// DeleteUser removes the user and every product they own. Only the
	// user themself may do so.
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Password, input.Age)
	if err != nil {
		s.logger.Debug("rejected invalid user",
			"error", err,
			"email", input.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email",
				"email", user.Email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", user.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// GetUserByEmail implements UserService.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email",
				"email", email)
		} else {
			s.logger.Error("failed to retrieve user by email",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	return user, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	filter.ListOptions = filter.ListOptions.Normalize()
	users, err := s.userStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountUsers implements UserService.
func (s *UserServiceImpl) CountUsers(ctx context.Context, filter store.UserFilter) (int, error) {
	count, err := s.userStore.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateUser implements UserService. The complete user is loaded, the
// update applied, and the complete user written back.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	actorID, userID uuid.UUID,
	update domain.UserUpdate,
) (*domain.User, error) {
	if actorID != userID {
		s.logger.Debug("rejected update of another user's account",
			"actor_id", actorID,
			"user_id", userID)
		return nil, ErrNotOwned
	}
	if update.IsEmpty() {
		return nil, domain.NewValidationError("body", "at least one field must be provided", nil)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	if err := user.ApplyUpdate(update); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to update to an existing email",
				"user_id", userID,
				"new_email", user.Email)
		} else {
			s.logger.Error("failed to update user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated successfully", "user_id", userID)
	return user, nil
}

// DeactivateUser implements UserService.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error) {
	return s.setActive(ctx, actorID, userID, false)
}

// ActivateUser implements UserService.
func (s *UserServiceImpl) ActivateUser(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error) {
	return s.setActive(ctx, actorID, userID, true)
}

func (s *UserServiceImpl) setActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if actorID != userID {
		return nil, ErrNotOwned
	}
	if user.Active == active {
		return user, nil
	}

	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to change user status",
			"error", err,
			"user_id", userID,
			"active", active)
		return nil, fmt.Errorf("failed to change user status: %w", err)
	}

	s.logger.Info("user status changed", "user_id", userID, "active", active)
	return user, nil
}

// DeleteUser implements UserService. The store removes the user's products
// together with the user.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if actorID != userID {
		return ErrNotOwned
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", userID)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted successfully", "user_id", userID)
	return nil
}
