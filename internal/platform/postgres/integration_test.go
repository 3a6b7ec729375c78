package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/storefront-api/internal/domain"
	"github.com/phrazzld/storefront-api/internal/platform/postgres"
	"github.com/phrazzld/storefront-api/internal/store"
	"github.com/phrazzld/storefront-api/internal/testdb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIntegration_UserAndProductLifecycle(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	users := postgres.NewUserStore(db, bcrypt.MinCost, nil)
	products := postgres.NewProductStore(db, nil)

	suffix := uuid.NewString()[:8]
	user, err := domain.NewUser("Integration User", "it-"+suffix+"@example.com", "supersecret", nil)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	dup, err := domain.NewUser("Duplicate", user.Email, "supersecret", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

	product, err := domain.NewProduct(user.ID, "Widget", "IT-"+suffix, 9.99, 3)
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, product))

	adjusted, err := products.AdjustStock(ctx, product.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, adjusted.Stock)

	_, err = products.AdjustStock(ctx, product.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	orphan, err := domain.NewProduct(uuid.New(), "Orphan", "OR-"+suffix, 1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, products.Create(ctx, orphan), store.ErrUserNotFound)

	owned, err := products.Summarize(ctx, store.ProductFilter{OwnerID: &user.ID})
	require.NoError(t, err)
	assert.Equal(t, store.InventorySummary{Products: 1, Units: 0, TotalValue: 0}, owned)

	user.Deactivate()
	require.NoError(t, users.Update(ctx, user))
	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	tooOld := stored.Clone()
	tooOld.Age = lo.ToPtr(121)
	assert.ErrorIs(t, users.Update(ctx, tooOld), domain.ErrValidation)

	require.NoError(t, users.Delete(ctx, user.ID))
	_, err = products.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound, "products are removed with their owner")
}

func TestIntegration_UserStoreInTransaction(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	email := "tx-" + uuid.NewString()[:8] + "@example.com"

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewUserStore(tx, bcrypt.MinCost, nil)

		user, err := domain.NewUser("Tx User", email, "supersecret", nil)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, user))

		got, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	_, err := postgres.NewUserStore(db, bcrypt.MinCost, nil).GetByEmail(ctx, email)
	assert.ErrorIs(t, err, store.ErrUserNotFound, "rolled back user must not be visible")
}
