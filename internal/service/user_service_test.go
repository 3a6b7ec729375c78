package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/mocks"
	"github.com/phrazzld/storefront-api/internal/platform/memory"
	"github.com/phrazzld/storefront-api/internal/service"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func existingUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:             id,
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "hashed_password123",
		Active:         true,
		CreatedAt:      time.Now().Add(-24 * time.Hour),
		UpdatedAt:      time.Now().Add(-24 * time.Hour),
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "alice@example.com" && u.Password == "supersecret" && *u.Age == 30
		})).Return(nil)

		svc := service.NewUserService(users, testLogger())
		user, err := svc.CreateUser(ctx, service.CreateUserInput{
			Name:     "Alice",
			Email:    " Alice@Example.com ",
			Password: "supersecret",
			Age:      lo.ToPtr(30),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		users.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.CreateUser(ctx, service.CreateUserInput{Name: "A", Email: "bad", Password: "short"})

		require.Error(t, err)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Fields, 3)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.CreateUser(ctx, service.CreateUserInput{
			Name: "Alice", Email: "alice@example.com", Password: "supersecret",
		})

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestUserService_GetAndList(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	users := new(mocks.UserStore)
	users.On("GetByID", mock.Anything, id).Return(existingUser(id), nil)
	users.On("GetByID", mock.Anything, mock.Anything).Return(nil, store.ErrUserNotFound)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(existingUser(id), nil)
	users.On("List", mock.Anything, store.UserFilter{
		ListOptions: store.ListOptions{Limit: store.DefaultListLimit},
		Active:      lo.ToPtr(true),
	}).Return([]*domain.User{existingUser(id)}, nil)
	users.On("Count", mock.Anything, store.UserFilter{Active: lo.ToPtr(true)}).Return(1, nil)

	svc := service.NewUserService(users, testLogger())

	user, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	user, err = svc.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	list, err := svc.ListUsers(ctx, store.UserFilter{Active: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	count, err := svc.CountUsers(ctx, store.UserFilter{Active: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	users.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	newEmail := "new@example.com"

	t.Run("successful update", func(t *testing.T) {
		users := new(mocks.UserStore)
		existing := existingUser(userID)
		createdAt := existing.CreatedAt

		users.On("GetByID", mock.Anything, userID).Return(existing, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == userID &&
				u.Email == newEmail &&
				u.HashedPassword == "hashed_password123" &&
				u.CreatedAt.Equal(createdAt)
		})).Return(nil)

		svc := service.NewUserService(users, testLogger())
		user, err := svc.UpdateUser(ctx, userID, userID, domain.UserUpdate{Email: &newEmail})

		require.NoError(t, err)
		assert.Equal(t, newEmail, user.Email)
		users.AssertExpectations(t)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.UpdateUser(ctx, uuid.New(), userID, domain.UserUpdate{Email: &newEmail})

		assert.ErrorIs(t, err, service.ErrNotOwned)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("empty update", func(t *testing.T) {
		svc := service.NewUserService(new(mocks.UserStore), testLogger())
		_, err := svc.UpdateUser(ctx, userID, userID, domain.UserUpdate{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid update", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.UpdateUser(ctx, userID, userID, domain.UserUpdate{Age: lo.ToPtr(151)})

		assert.ErrorIs(t, err, domain.ErrValidation)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("email already exists", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		users.On("Update", mock.Anything, mock.Anything).Return(store.ErrEmailExists)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.UpdateUser(ctx, userID, userID, domain.UserUpdate{Email: &newEmail})

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("user not found", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)
		svc := service.NewUserService(users, testLogger())

		_, err := svc.UpdateUser(ctx, userID, userID, domain.UserUpdate{Email: &newEmail})

		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes through the store", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		users.On("Delete", mock.Anything, userID).Return(nil)

		svc := service.NewUserService(users, testLogger())
		require.NoError(t, svc.DeleteUser(ctx, userID, userID))

		users.AssertExpectations(t)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		svc := service.NewUserService(users, testLogger())

		err := svc.DeleteUser(ctx, uuid.New(), userID)

		assert.ErrorIs(t, err, service.ErrNotOwned)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)
		svc := service.NewUserService(users, testLogger())

		assert.ErrorIs(t, svc.DeleteUser(ctx, userID, userID), store.ErrUserNotFound)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		users := new(mocks.UserStore)
		deleteErr := errors.New("delete failed")
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		users.On("Delete", mock.Anything, userID).Return(deleteErr)

		svc := service.NewUserService(users, testLogger())
		assert.ErrorIs(t, svc.DeleteUser(ctx, userID, userID), deleteErr)
	})
}

func TestUserService_DeleteUserRemovesProductsAtomically(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore(testLogger())
	users := memory.NewUserStore(4, testLogger()).WithProducts(products)
	svc := service.NewUserService(users, testLogger())

	owner, err := svc.CreateUser(ctx, service.CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	catalogue := service.NewProductService(products, users, testLogger())
	for _, sku := range []string{"LAMP-1", "LAMP-2", "LAMP-3"} {
		_, err := catalogue.CreateProduct(ctx, owner.ID, service.CreateProductInput{
			Name: "Lamp " + sku, SKU: sku, Price: 10, Stock: 1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteUser(ctx, owner.ID, owner.ID))

	left, err := products.List(ctx, store.ProductFilter{OwnerID: &owner.ID})
	require.NoError(t, err)
	assert.Empty(t, left)
	_, err = users.GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_DeactivateActivate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deactivates own account", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == userID && !u.Active
		})).Return(nil)

		svc := service.NewUserService(users, testLogger())
		user, err := svc.DeactivateUser(ctx, userID, userID)
		require.NoError(t, err)
		assert.False(t, user.Active)
		users.AssertExpectations(t)
	})

	t.Run("activates own account", func(t *testing.T) {
		inactive := existingUser(userID)
		inactive.Active = false
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(inactive, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return u.Active })).Return(nil)

		svc := service.NewUserService(users, testLogger())
		user, err := svc.ActivateUser(ctx, userID, userID)
		require.NoError(t, err)
		assert.True(t, user.Active)
	})

	t.Run("already in requested state skips the write", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)

		svc := service.NewUserService(users, testLogger())
		user, err := svc.ActivateUser(ctx, userID, userID)
		require.NoError(t, err)
		assert.True(t, user.Active)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(existingUser(userID), nil)

		svc := service.NewUserService(users, testLogger())
		_, err := svc.DeactivateUser(ctx, uuid.New(), userID)
		assert.ErrorIs(t, err, service.ErrNotOwned)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

		svc := service.NewUserService(users, testLogger())
		_, err := svc.DeactivateUser(ctx, userID, userID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
