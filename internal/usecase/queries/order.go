package queries

import (
	"context"
	"time"

	"shop-backend/internal/domain/order"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order_mock.go -package=queriesmock

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FirstPage(ctx context.Context, status *order.Status, limit int32) ([]*order.Order, error)
	Keyset(ctx context.Context, status *order.Status, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*order.Order, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrders(ctx context.Context, status *order.Status, cursor *Cursor, limit int) ([]*order.Order, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NotFound(err, shared.ErrOrderNotFound)
	}
	return o, nil
}

func (q *orderQueriesImpl) ListOrders(ctx context.Context, status *order.Status, cursor *Cursor, limit int) ([]*order.Order, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*order.Order
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FirstPage(ctx, status, int32(limit+1)) // #nosec G115 -- bounded by ValidateLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.Keyset(ctx, status, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}
	return rows, next, nil
}
