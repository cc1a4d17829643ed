package order

import (
	"context"
	"os"
	"testing"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	repo := NewPostgres(pool, nil)

	o, err := repo.Save(ctx, domain.Order{DestinationAddress: "1 Main St", Weight: 2.5, DeliveryStatus: domain.StatusOnWarehouse})
	require.NoError(t, err)
	assert.NotZero(t, o.ID)

	ok, err := repo.Exists(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	o.DeliveryStatus = domain.StatusDelivered
	o.StatusMessage = "signed by recipient"
	updated, err := repo.Save(ctx, *o)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.DeliveryStatus)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "signed by recipient", got.StatusMessage)
	assert.InDelta(t, 2.5, got.Weight, 1e-9)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, o.ID))
	assert.ErrorIs(t, repo.Delete(ctx, o.ID), domain.ErrNotFound)

	ok, err = repo.Exists(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgres_RejectsNonPositiveWeight(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	repo := NewPostgres(pool, nil)

	_, err := repo.Save(ctx, domain.Order{DestinationAddress: "x", Weight: 0, DeliveryStatus: domain.StatusOnWarehouse})
	assert.Error(t, err)
}

func TestPostgres_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	repo := NewPostgres(pool, nil)

	_, err := repo.Save(ctx, domain.Order{ID: 4242, DestinationAddress: "x", Weight: 1, DeliveryStatus: domain.StatusOnWarehouse})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// testPool connects to TEST_DB_DSN, migrates and truncates orders. Skips when unset.
func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrate.Apply(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE orders RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}
