package repository

import (
	"context"

	"shop-backend/internal/domain/order"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type OrderQueries interface {
	CreateOrder(ctx context.Context, db query.DBTX, arg query.CreateOrderParams) error
	GetOrder(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Order, error)
	LockOrder(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Order, error)
	UpdateOrderStatus(ctx context.Context, db query.DBTX, arg query.UpdateOrderStatusParams) (int64, error)
}

type OrderRepository struct {
	queries OrderQueries
	db      query.DBTX
}

func NewOrderRepository(queries OrderQueries, db query.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	params, err := converter.OrderToCreateParams(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateOrder(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrder(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	return decodeOrder(row)
}

func (r *OrderRepository) Lock(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.LockOrder(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock order", err)
	}
	return decodeOrder(row)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	params, err := converter.OrderToStatusParams(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order", err, infra.KindDBFailure)
	}
	n, err := r.queries.UpdateOrderStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("order is no longer pending", nil, infra.KindStaleState)
	}
	return nil
}

func decodeOrder(row query.Order) (*order.Order, error) {
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}
