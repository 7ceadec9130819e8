package readstore

import (
	"context"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"
)

type CartReadQueries interface {
	GetCart(ctx context.Context, db query.DBTX, id string) (query.Cart, error)
	ListCartItems(ctx context.Context, db query.DBTX, cartID string) ([]query.CartItem, error)
	ListExpiredCartIDs(ctx context.Context, db query.DBTX, now time.Time, limit int32) ([]string, error)
}

type CartReadStore struct {
	queries CartReadQueries
	db      query.DBTX
}

func NewCartReadStore(queries CartReadQueries, db query.DBTX) *CartReadStore {
	return &CartReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *CartReadStore) FindByID(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	row, err := s.queries.GetCart(ctx, s.db, id.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get cart", err)
	}

	items, err := s.queries.ListCartItems(ctx, s.db, id.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart items", err)
	}

	c, err := converter.CartFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart", err, infra.KindDBFailure)
	}
	return c, nil
}

func (s *CartReadStore) ListExpiredIDs(ctx context.Context, now time.Time, limit int) ([]cart.ID, error) {
	rows, err := s.queries.ListExpiredCartIDs(ctx, s.db, now, int32(limit)) // #nosec G115 -- batch size from config
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired carts", err)
	}
	ids := make([]cart.ID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, cart.ID(r))
	}
	return ids, nil
}
