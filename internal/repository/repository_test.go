package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/migrate"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real PostgreSQL and are skipped unless
// TEST_DB_STRING points at a disposable database.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_STRING")
	if dsn == "" {
		t.Skip("TEST_DB_STRING not set")
	}
	require.NoError(t, migrate.Up(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// seedOrder stores a fresh order with one item of the given balance.
func seedOrder(t *testing.T, pool *pgxpool.Pool, balance int) (*domain.Order, *domain.LineItem) {
	t.Helper()
	ctx := context.Background()
	key := "T-" + uuid.NewString()
	o := &domain.Order{
		Key:        key,
		Contract:   "T",
		Client:     "client",
		DeliveryAt: time.Now().UTC().Truncate(time.Second),
		Items:      []*domain.LineItem{{Code: "C1", Description: "beam", Balance: balance}},
	}
	require.NoError(t, NewOrderRepository(pool).UpsertOrder(ctx, o))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM shipping.shipment_closures WHERE order_key = $1`, key)
		_, _ = pool.Exec(context.Background(), `DELETE FROM shipping.orders WHERE key = $1`, key)
	})

	items, err := NewItemRepository(pool).ListItems(ctx, key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return o, items[0]
}

func define(t *testing.T, pool *pgxpool.Pool, it *domain.LineItem, qty int) *domain.LineItem {
	t.Helper()
	ch, err := it.PlanQuantity(qty, true)
	require.NoError(t, err)
	repo := NewItemRepository(pool)
	if !ch.Noop() {
		require.NoError(t, repo.SetDefinedQuantity(context.Background(), ch))
	}
	got, err := repo.GetItem(context.Background(), it.ID)
	require.NoError(t, err)
	return got
}

func volumeFor(it *domain.LineItem, number, qty int) *domain.Volume {
	return &domain.Volume{
		ID:          uuid.New(),
		ItemID:      it.ID,
		OrderKey:    it.OrderKey,
		Code:        it.Code,
		Description: it.Description,
		Number:      number,
		Quantity:    qty,
		Photos:      []string{"http://photos/fotos/a.jpg"},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestUpsertOrderRedeliveryKeepsCounters(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	o, it := seedOrder(t, pool, 10)

	it = define(t, pool, it, 4)
	assert.Equal(t, 4, it.Defined)
	assert.Equal(t, 6, it.Balance)
	assert.True(t, it.Selected)

	again := &domain.Order{
		Key:        o.Key,
		Contract:   "T",
		Client:     "renamed",
		DeliveryAt: o.DeliveryAt,
		Items:      []*domain.LineItem{{Code: "C1", Description: "steel beam", Balance: 99}},
	}
	require.NoError(t, NewOrderRepository(pool).UpsertOrder(ctx, again))
	assert.Equal(t, o.ID, again.ID)

	items, err := NewItemRepository(pool).ListItems(ctx, o.Key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, it.ID, items[0].ID)
	assert.Equal(t, "steel beam", items[0].Description)
	assert.Equal(t, 4, items[0].Defined)
	assert.Equal(t, 6, items[0].Balance)

	got, err := NewOrderRepository(pool).GetOrderByKey(ctx, o.Key)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Client)
}

func TestSetDefinedQuantityGuards(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewItemRepository(pool)
	_, it := seedOrder(t, pool, 10)

	stale, err := it.PlanQuantity(3, false)
	require.NoError(t, err)
	cur := define(t, pool, it, 6)

	assert.ErrorIs(t, repo.SetDefinedQuantity(ctx, stale), domain.ErrItemChanged)

	zero := define(t, pool, cur, 0)
	assert.Equal(t, 10, zero.Balance)
	assert.False(t, zero.Selected)

	missing := domain.QuantityChange{ItemID: uuid.New(), From: 0, To: 1}
	assert.ErrorIs(t, repo.SetDefinedQuantity(ctx, missing), ErrNotFound)
}

func TestCreateVolumeGuards(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	vols := NewVolumeRepository(pool)
	_, it := seedOrder(t, pool, 5)
	it = define(t, pool, it, 3)

	require.NoError(t, vols.CreateVolume(ctx, volumeFor(it, 1, 2)))

	assert.ErrorIs(t, vols.CreateVolume(ctx, volumeFor(it, 1, 1)), domain.ErrVolumeNumberTaken)
	assert.ErrorIs(t, vols.CreateVolume(ctx, volumeFor(it, 2, 2)), domain.ErrRemainingExceeded)

	taken, err := vols.VolumeNumberTaken(ctx, it.ID, 2)
	require.NoError(t, err)
	assert.False(t, taken)

	got, err := NewItemRepository(pool).GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Separated)
	assert.Equal(t, 1, got.Remaining)

	list, err := vols.ListItemVolumes(ctx, it.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	define(t, pool, got, 3)
	list, err = vols.ListItemVolumes(ctx, it.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	redefined := define(t, pool, got, 2)
	assert.Zero(t, redefined.Separated)
	list, err = vols.ListItemVolumes(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCloseOrderOnce(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	closures := NewClosureRepository(pool)
	o, _ := seedOrder(t, pool, 1)

	c, err := domain.NewClosure(o.Key, domain.CloseShipmentInput{
		DriverName: "Ana", Plate: "abc1d23", Photos: []string{"http://photos/fotos/b.jpg"},
	})
	require.NoError(t, err)
	require.NoError(t, closures.CloseOrder(ctx, c))

	again, err := domain.NewClosure(o.Key, domain.CloseShipmentInput{
		DriverName: "Ana", Plate: "X", Photos: []string{"http://photos/fotos/c.jpg"},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, closures.CloseOrder(ctx, again), ErrOrderAlreadyClosed)

	got, err := NewOrderRepository(pool).GetOrderByKey(ctx, o.Key)
	require.NoError(t, err)
	assert.True(t, got.Finalized)

	stored, err := closures.GetClosure(ctx, o.Key)
	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", stored.Plate)

	pending, err := NewOrderRepository(pool).ListPending(ctx)
	require.NoError(t, err)
	for _, p := range pending {
		assert.NotEqual(t, o.Key, p.Key)
	}
}
