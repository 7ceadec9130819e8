package queries

import (
	"context"
	"log/slog"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/shared"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/queries/cart_mock.go -package=queriesmock

var ErrCacheMiss = errs.New("cart cache miss")

type CartReadStore interface {
	FindByID(ctx context.Context, id cart.ID) (*cart.Cart, error)
	ListExpiredIDs(ctx context.Context, now time.Time, limit int) ([]cart.ID, error)
}

// CartCache returns ErrCacheMiss when nothing is stored for the id. Get also
// reports the id's generation, which Delete advances. Fill stores only while
// the generation is unchanged, so a store read that raced a committed
// mutation never lands in the cache.
type CartCache interface {
	Get(ctx context.Context, id cart.ID) (*cart.Cart, int64, error)
	Fill(ctx context.Context, c *cart.Cart, generation int64) error
	Delete(ctx context.Context, id cart.ID) error
}

type CartQueries interface {
	GetCart(ctx context.Context, id cart.ID) (*cart.Cart, error)
}

type cartQueriesImpl struct {
	store  CartReadStore
	cache  CartCache
	logger *slog.Logger
}

func NewCartQueries(store CartReadStore, cache CartCache, logger *slog.Logger) CartQueries {
	return &cartQueriesImpl{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetCart reads through the cache. Cache failures degrade to a store read.
func (q *cartQueriesImpl) GetCart(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	cached, generation, err := q.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	missed := errs.Is(err, ErrCacheMiss)
	if !missed {
		q.logger.Warn("cart cache read failed", "cart_id", id, "error", err.Error())
	}

	c, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NotFound(err, shared.ErrCartNotFound)
	}

	if missed {
		if err := q.cache.Fill(ctx, c, generation); err != nil {
			q.logger.Warn("cart cache write failed", "cart_id", id, "error", err.Error())
		}
	}
	return c, nil
}
