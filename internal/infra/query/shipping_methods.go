package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const shippingColumns = `id, name, description, type, price, free_above, delivery_from, delivery_to, stock, temp_stock, created_at`

func scanShippingMethod(row pgx.Row) (ShippingMethod, error) {
	var s ShippingMethod
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Type, &s.Price, &s.FreeAbove,
		&s.DeliveryFrom, &s.DeliveryTo, &s.Stock, &s.TempStock, &s.CreatedAt)
	return s, err
}

type CreateShippingMethodParams struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Type         string
	Price        int64
	FreeAbove    pgtype.Int8
	DeliveryFrom pgtype.Timestamptz
	DeliveryTo   pgtype.Timestamptz
	Stock        int32
	TempStock    int32
}

const createShippingMethod = `
INSERT INTO shipping_methods (id, name, description, type, price, free_above, delivery_from, delivery_to,
                              stock, temp_stock, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
RETURNING ` + shippingColumns

func (q *Queries) CreateShippingMethod(ctx context.Context, db DBTX, arg CreateShippingMethodParams) (ShippingMethod, error) {
	return scanShippingMethod(db.QueryRow(ctx, createShippingMethod,
		arg.ID, arg.Name, arg.Description, arg.Type, arg.Price, arg.FreeAbove,
		arg.DeliveryFrom, arg.DeliveryTo, arg.Stock, arg.TempStock))
}

const getShippingMethod = `SELECT ` + shippingColumns + ` FROM shipping_methods WHERE id = $1`

func (q *Queries) GetShippingMethod(ctx context.Context, db DBTX, id uuid.UUID) (ShippingMethod, error) {
	return scanShippingMethod(db.QueryRow(ctx, getShippingMethod, id))
}

const listShippingMethods = `SELECT ` + shippingColumns + ` FROM shipping_methods ORDER BY price, name, id`

func (q *Queries) ListShippingMethods(ctx context.Context, db DBTX) ([]ShippingMethod, error) {
	rows, err := db.Query(ctx, listShippingMethods)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ShippingMethod
	for rows.Next() {
		s, err := scanShippingMethod(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// A shipping method reservation is always a single slot.
const reserveShippingSlot = `
UPDATE shipping_methods SET temp_stock = temp_stock - 1, updated_at = now()
WHERE id = $1 AND temp_stock > 0`

func (q *Queries) ReserveShippingSlot(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, reserveShippingSlot, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const releaseShippingSlot = `
UPDATE shipping_methods SET temp_stock = temp_stock + 1, updated_at = now()
WHERE id = $1`

func (q *Queries) ReleaseShippingSlot(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, releaseShippingSlot, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const commitShippingSlot = `
UPDATE shipping_methods SET stock = stock - 1, updated_at = now()
WHERE id = $1`

func (q *Queries) CommitShippingSlot(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, commitShippingSlot, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const shippingMethodExists = `SELECT EXISTS (SELECT 1 FROM shipping_methods WHERE id = $1)`

func (q *Queries) ShippingMethodExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx, shippingMethodExists, id).Scan(&ok)
	return ok, err
}
