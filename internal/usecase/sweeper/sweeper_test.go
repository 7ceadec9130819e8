//go:build unit

package sweeper_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/infra/cache"
	"shop-backend/internal/infra/memstore"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/sweeper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 15 * time.Minute

type fixture struct {
	store   *memstore.Store
	clock   *clock.MockClock
	carts   commands.CartCommands
	sweeper *sweeper.Sweeper
	product uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	carts := commands.NewCartCommands(store, cache.NopCache{}, clk, ttl, m, logger)

	p, err := inventory.NewProduct("Flour", "", 900, nil, 20, clk.Now())
	require.NoError(t, err)
	store.PutProduct(p)

	return &fixture{
		store:   store,
		clock:   clk,
		carts:   carts,
		sweeper: sweeper.New(store, carts, clk, sweeper.Config{Interval: 10 * time.Millisecond, BatchSize: 10, Concurrency: 3}, m, logger),
		product: p.ID(),
	}
}

func (f *fixture) cartWith(t *testing.T, id cart.ID, amount int) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.EnsureCart(ctx, id)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, id, f.product, amount)
	require.NoError(t, err)
}

func (f *fixture) tempStock(t *testing.T) int {
	t.Helper()
	p, ok := f.store.Product(f.product)
	require.True(t, ok)
	return p.TempStock()
}

func TestSweepOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("releases only expired carts", func(t *testing.T) {
		f := newFixture(t)
		f.cartWith(t, "old-cart-1", 3)
		f.cartWith(t, "old-cart-2", 4)
		f.clock.Add(10 * time.Minute)
		f.cartWith(t, "new-cart-1", 5)
		f.clock.Add(6 * time.Minute)

		res, err := f.sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, sweeper.Result{Released: 2}, res)
		assert.Equal(t, 15, f.tempStock(t))

		_, err = f.store.FindByID(ctx, "new-cart-1")
		assert.NoError(t, err)
		_, err = f.store.FindByID(ctx, "old-cart-1")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("nothing to do", func(t *testing.T) {
		f := newFixture(t)
		f.cartWith(t, "fresh-cart", 1)

		res, err := f.sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, sweeper.Result{}, res)
		assert.Equal(t, 19, f.tempStock(t))
	})

	t.Run("one failing cart does not block the rest", func(t *testing.T) {
		f := newFixture(t)
		for _, id := range []cart.ID{"cart-aaaa", "cart-bbbb", "cart-cccc"} {
			f.cartWith(t, id, 2)
		}
		f.clock.Add(ttl)
		f.store.FailNext("Delete", errs.New("deadlock detected"))

		res, err := f.sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Released)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, 18, f.tempStock(t))
		assert.Equal(t, 2, f.store.ReservedFor(f.product))
	})
}

// racingLister hands out an id whose cart is gone by the time it is released.
type racingLister struct {
	ids []cart.ID
}

func (l racingLister) ListExpiredIDs(context.Context, time.Time, int) ([]cart.ID, error) {
	return l.ids, nil
}

func TestSweepSkipsVanishedAndExtendedCarts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.cartWith(t, "still-live", 2)

	s := sweeper.New(
		racingLister{ids: []cart.ID{"already-gone", "still-live"}},
		f.carts, f.clock,
		sweeper.Config{Interval: time.Second, BatchSize: 10, Concurrency: 2},
		metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	res, err := s.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, sweeper.Result{Skipped: 2}, res)
	assert.Equal(t, 18, f.tempStock(t))
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)
	f.cartWith(t, "abandoned-cart", 6)
	f.clock.Add(ttl + time.Minute)

	f.sweeper.Start()
	f.sweeper.Start()

	require.Eventually(t, func() bool {
		return f.tempStock(t) == 20
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.sweeper.Stop(ctx))
	require.NoError(t, f.sweeper.Stop(ctx))
}
