package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const cartColumns = `id, shipping_method_id, customer_details, order_id, created_at, expires_at`

func scanCart(row pgx.Row) (Cart, error) {
	var c Cart
	err := row.Scan(&c.ID, &c.ShippingMethodID, &c.CustomerDetails, &c.OrderID, &c.CreatedAt, &c.ExpiresAt)
	return c, err
}

const insertCartIfAbsent = `
INSERT INTO carts (id, created_at, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING`

// InsertCartIfAbsent reports whether a new row was created.
func (q *Queries) InsertCartIfAbsent(ctx context.Context, db DBTX, id string, createdAt, expiresAt time.Time) (bool, error) {
	tag, err := db.Exec(ctx, insertCartIfAbsent, id, createdAt, expiresAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const getCart = `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`

func (q *Queries) GetCart(ctx context.Context, db DBTX, id string) (Cart, error) {
	return scanCart(db.QueryRow(ctx, getCart, id))
}

const lockCart = getCart + ` FOR UPDATE`

func (q *Queries) LockCart(ctx context.Context, db DBTX, id string) (Cart, error) {
	return scanCart(db.QueryRow(ctx, lockCart, id))
}

const listCartItems = `
SELECT cart_id, product_id, amount FROM cart_items
WHERE cart_id = $1
ORDER BY added_at, product_id`

func (q *Queries) ListCartItems(ctx context.Context, db DBTX, cartID string) ([]CartItem, error) {
	rows, err := db.Query(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.CartID, &it.ProductID, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const addCartItemAmount = `
INSERT INTO cart_items (cart_id, product_id, amount, added_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (cart_id, product_id) DO UPDATE SET amount = cart_items.amount + EXCLUDED.amount`

func (q *Queries) AddCartItemAmount(ctx context.Context, db DBTX, cartID string, productID uuid.UUID, amount int32) error {
	_, err := db.Exec(ctx, addCartItemAmount, cartID, productID, amount)
	return err
}

const setCartItemAmount = `
UPDATE cart_items SET amount = $3
WHERE cart_id = $1 AND product_id = $2`

func (q *Queries) SetCartItemAmount(ctx context.Context, db DBTX, cartID string, productID uuid.UUID, amount int32) (int64, error) {
	tag, err := db.Exec(ctx, setCartItemAmount, cartID, productID, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItem = `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

func (q *Queries) DeleteCartItem(ctx context.Context, db DBTX, cartID string, productID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteCartItem, cartID, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const setCartShippingMethod = `UPDATE carts SET shipping_method_id = $2 WHERE id = $1`

func (q *Queries) SetCartShippingMethod(ctx context.Context, db DBTX, id string, methodID pgtype.UUID) (int64, error) {
	tag, err := db.Exec(ctx, setCartShippingMethod, id, methodID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const setCartCustomerDetails = `UPDATE carts SET customer_details = $2 WHERE id = $1`

func (q *Queries) SetCartCustomerDetails(ctx context.Context, db DBTX, id string, details []byte) (int64, error) {
	tag, err := db.Exec(ctx, setCartCustomerDetails, id, details)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const linkCartOrder = `UPDATE carts SET order_id = $2, expires_at = $3 WHERE id = $1`

func (q *Queries) LinkCartOrder(ctx context.Context, db DBTX, id string, orderID uuid.UUID, expiresAt time.Time) (int64, error) {
	tag, err := db.Exec(ctx, linkCartOrder, id, orderID, expiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const setCartExpiry = `UPDATE carts SET expires_at = $2 WHERE id = $1`

func (q *Queries) SetCartExpiry(ctx context.Context, db DBTX, id string, expiresAt time.Time) (int64, error) {
	tag, err := db.Exec(ctx, setCartExpiry, id, expiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCart = `DELETE FROM carts WHERE id = $1`

func (q *Queries) DeleteCart(ctx context.Context, db DBTX, id string) (int64, error) {
	tag, err := db.Exec(ctx, deleteCart, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listExpiredCartIDs = `
SELECT id FROM carts
WHERE expires_at <= $1
ORDER BY expires_at
LIMIT $2`

func (q *Queries) ListExpiredCartIDs(ctx context.Context, db DBTX, now time.Time, limit int32) ([]string, error) {
	rows, err := db.Query(ctx, listExpiredCartIDs, now, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
