package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/samber/lo"
)

// UserStore implements store.UserStore with an in-process map.
type UserStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	byEmail    map[string]uuid.UUID
	products   *ProductStore
	bcryptCost int
	logger     *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty UserStore hashing passwords with bcryptCost.
// If logger is nil, slog.Default() is used.
func NewUserStore(bcryptCost int, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		users:      make(map[uuid.UUID]*domain.User),
		byEmail:    make(map[string]uuid.UUID),
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "memory_user_store")),
	}
}

// WithProducts links the product store whose listings Delete removes along
// with their owner. Without it Delete removes only the user.
func (s *UserStore) WithProducts(products *ProductStore) *UserStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	return s
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	user.Email = domain.NormalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("%w: user id %s", store.ErrDuplicate, user.ID)
	}
	if _, taken := s.byEmail[user.Email]; taken {
		log.Debug("email already registered", slog.String("user_id", user.ID.String()))
		return store.ErrEmailExists
	}

	if err := store.HashUserPassword(user, s.bcryptCost); err != nil {
		return err
	}

	s.users[user.ID] = user.Clone()
	s.byEmail[user.Email] = user.ID

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user.Clone(), nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return s.users[id].Clone(), nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	s.mu.RLock()
	users := lo.FilterMap(lo.Values(s.users), func(u *domain.User, _ int) (*domain.User, bool) {
		return u.Clone(), matchesUser(u, filter)
	})
	s.mu.RUnlock()

	byCreation(users,
		func(u *domain.User) time.Time { return u.CreatedAt },
		func(u *domain.User) uuid.UUID { return u.ID })

	return page(users, filter.ListOptions), nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context, filter store.UserFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(lo.Values(s.users), func(u *domain.User) bool {
		return matchesUser(u, filter)
	}), nil
}

func matchesUser(u *domain.User, filter store.UserFilter) bool {
	return filter.Active == nil || u.Active == *filter.Active
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	user.Email = domain.NormalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}

	if owner, taken := s.byEmail[user.Email]; taken && owner != user.ID {
		log.Debug("email already registered to another user",
			slog.String("user_id", user.ID.String()))
		return store.ErrEmailExists
	}

	if err := store.HashUserPassword(user, s.bcryptCost); err != nil {
		return err
	}

	// Creation time is owned by the store.
	user.CreatedAt = existing.CreatedAt

	delete(s.byEmail, existing.Email)
	s.byEmail[user.Email] = user.ID
	s.users[user.ID] = user.Clone()

	log.Debug("user updated", slog.String("user_id", user.ID.String()))
	return nil
}

// Delete implements store.UserStore.Delete. The user's products are removed
// while the user lock is held, so no reader sees the user without them.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}

	removed := 0
	if s.products != nil {
		removed = s.products.deleteOwnedBy(id)
	}

	delete(s.byEmail, user.Email)
	delete(s.users, id)

	logger.FromContextOrDefault(ctx, s.logger).Debug("user deleted",
		slog.String("user_id", id.String()),
		slog.Int("products_removed", removed))
	return nil
}
