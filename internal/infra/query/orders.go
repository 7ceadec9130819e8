package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, cart_id, status, snapshot, payment_process, transaction, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CartID, &o.Status, &o.Snapshot, &o.PaymentProcess, &o.Transaction, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

type CreateOrderParams struct {
	ID             uuid.UUID
	CartID         string
	Status         string
	Snapshot       []byte
	PaymentProcess []byte
	CreatedAt      time.Time
}

const createOrder = `
INSERT INTO orders (id, cart_id, status, snapshot, payment_process, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`

func (q *Queries) CreateOrder(ctx context.Context, db DBTX, arg CreateOrderParams) error {
	_, err := db.Exec(ctx, createOrder, arg.ID, arg.CartID, arg.Status, arg.Snapshot, arg.PaymentProcess, arg.CreatedAt)
	return err
}

const getOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

func (q *Queries) GetOrder(ctx context.Context, db DBTX, id uuid.UUID) (Order, error) {
	return scanOrder(db.QueryRow(ctx, getOrder, id))
}

const lockOrder = getOrder + ` FOR UPDATE`

func (q *Queries) LockOrder(ctx context.Context, db DBTX, id uuid.UUID) (Order, error) {
	return scanOrder(db.QueryRow(ctx, lockOrder, id))
}

type UpdateOrderStatusParams struct {
	ID          uuid.UUID
	Status      string
	Transaction []byte
	UpdatedAt   time.Time
}

// Only pending orders move; the caller treats zero rows as a lost race.
const updateOrderStatus = `
UPDATE orders SET status = $2, transaction = COALESCE($3, transaction), updated_at = $4
WHERE id = $1 AND status = 'pending'`

func (q *Queries) UpdateOrderStatus(ctx context.Context, db DBTX, arg UpdateOrderStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateOrderStatus, arg.ID, arg.Status, arg.Transaction, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type ListOrdersParams struct {
	Status       pgtype.Text
	AfterCreated pgtype.Timestamptz
	AfterID      pgtype.UUID
	Limit        int32
}

// Keyset pagination on (created_at, id), newest first.
const listOrders = `
SELECT ` + orderColumns + ` FROM orders
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4`

func (q *Queries) ListOrders(ctx context.Context, db DBTX, arg ListOrdersParams) ([]Order, error) {
	rows, err := db.Query(ctx, listOrders, arg.Status, arg.AfterCreated, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}
