//go:build unit

package cache

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/usecase/queries"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

func sampleCart(t *testing.T) *cart.Cart {
	t.Helper()
	methodID := uuid.New()
	customer, err := cart.NewCustomerDetails("Dana Levi", "dana@example.com", "0521234567", "Herzl", 10, "4")
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Millisecond)
	return cart.Reconstruct("cart-0001",
		[]cart.LineItem{{ProductID: uuid.New(), Amount: 2}},
		&methodID, customer, nil, now, now.Add(15*time.Minute))
}

func TestFillThenGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	want := sampleCart(t)

	require.NoError(t, c.Fill(ctx, want, 0))
	assert.True(t, mr.Exists("cart:{cart-0001}"))

	got, generation, err := c.Get(ctx, want.ID())
	require.NoError(t, err)
	assert.Zero(t, generation)

	opts := cmp.Options{cmp.AllowUnexported(cart.Cart{}), cmpopts.EquateApproxTime(time.Millisecond)}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCacheMiss(t *testing.T) {
	c, _ := setupTestRedis(t)

	got, generation, err := c.Get(context.Background(), "cart-0404")
	assert.ErrorIs(t, err, queries.ErrCacheMiss)
	assert.Nil(t, got)
	assert.Zero(t, generation)
}

func TestGetInvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:{cart-0001}", "{not json"))

	_, _, err := c.Get(context.Background(), "cart-0001")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, queries.ErrCacheMiss)
}

func TestFillNeverOutlivesCart(t *testing.T) {
	c, mr := setupTestRedis(t)
	now := time.Now()
	short := cart.Reconstruct("cart-0002", nil, nil, nil, nil, now, now.Add(time.Minute))

	require.NoError(t, c.Fill(context.Background(), short, 0))
	assert.LessOrEqual(t, mr.TTL("cart:{cart-0002}"), time.Minute)

	expired := cart.Reconstruct("cart-0003", nil, nil, nil, nil, now, now.Add(-time.Minute))
	require.NoError(t, c.Fill(context.Background(), expired, 0))
	assert.False(t, mr.Exists("cart:{cart-0003}"))
}

func TestDeleteAdvancesGeneration(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Fill(ctx, sampleCart(t), 0))

	require.NoError(t, c.Delete(ctx, "cart-0001"))
	assert.False(t, mr.Exists("cart:{cart-0001}"))
	assert.True(t, mr.TTL("cart:{cart-0001}:gen") > 0)

	_, generation, err := c.Get(ctx, "cart-0001")
	assert.ErrorIs(t, err, queries.ErrCacheMiss)
	assert.Equal(t, int64(1), generation)

	t.Run("fill with the old generation is dropped", func(t *testing.T) {
		require.NoError(t, c.Fill(ctx, sampleCart(t), 0))
		assert.False(t, mr.Exists("cart:{cart-0001}"))
	})

	t.Run("fill with the current generation is stored", func(t *testing.T) {
		require.NoError(t, c.Fill(ctx, sampleCart(t), generation))
		assert.True(t, mr.Exists("cart:{cart-0001}"))
	})
}

// racingStore commits a mutation (and its cache invalidation) while the
// first read is in flight, so that read returns the pre-mutation cart.
type racingStore struct {
	cache  *RedisCache
	before *cart.Cart
	after  *cart.Cart
	reads  atomic.Int32
}

func (s *racingStore) FindByID(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	if s.reads.Add(1) == 1 {
		if err := s.cache.Delete(ctx, id); err != nil {
			return nil, err
		}
		return s.before, nil
	}
	return s.after, nil
}

func (s *racingStore) ListExpiredIDs(context.Context, time.Time, int) ([]cart.ID, error) {
	return nil, nil
}

func TestGetCartNeverCachesReadOlderThanMutation(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	after := sampleCart(t)
	before := cart.Reconstruct(after.ID(), nil, nil, nil, nil, after.CreatedAt(), after.ExpiresAt())
	store := &racingStore{cache: c, before: before, after: after}
	q := queries.NewCartQueries(store, c, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first, err := q.GetCart(ctx, after.ID())
	require.NoError(t, err)
	assert.Empty(t, first.Items())

	second, err := q.GetCart(ctx, after.ID())
	require.NoError(t, err)
	assert.Len(t, second.Items(), 1)
	assert.Equal(t, int32(2), store.reads.Load())

	third, err := q.GetCart(ctx, after.ID())
	require.NoError(t, err)
	assert.Len(t, third.Items(), 1)
	assert.Equal(t, int32(2), store.reads.Load(), "current cart is served from cache")
}
