package readstore

import (
	"context"
	"time"

	"shop-backend/internal/domain/order"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadQueries interface {
	GetOrder(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Order, error)
	ListOrders(ctx context.Context, db query.DBTX, arg query.ListOrdersParams) ([]query.Order, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      query.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db query.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := s.queries.GetOrder(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	return decode(row)
}

func (s *OrderReadStore) FirstPage(ctx context.Context, status *order.Status, limit int32) ([]*order.Order, error) {
	return s.list(ctx, query.ListOrdersParams{Status: statusParam(status), Limit: limit})
}

func (s *OrderReadStore) Keyset(ctx context.Context, status *order.Status, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*order.Order, error) {
	return s.list(ctx, query.ListOrdersParams{
		Status:       statusParam(status),
		AfterCreated: pgtype.Timestamptz{Time: lastCreatedAt, Valid: true},
		AfterID:      pgtype.UUID{Bytes: lastID, Valid: true},
		Limit:        limit,
	})
}

func (s *OrderReadStore) list(ctx context.Context, params query.ListOrdersParams) ([]*order.Order, error) {
	rows, err := s.queries.ListOrders(ctx, s.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	out := make([]*order.Order, 0, len(rows))
	for _, r := range rows {
		o, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func statusParam(status *order.Status) pgtype.Text {
	if status == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: status.String(), Valid: true}
}

func decode(row query.Order) (*order.Order, error) {
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}
