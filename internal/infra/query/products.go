package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, description, price, images, stock, temp_stock, created_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Images, &p.Stock, &p.TempStock, &p.CreatedAt)
	return p, err
}

type CreateProductParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	Images      []string
	Stock       int32
	TempStock   int32
}

const createProduct = `
INSERT INTO products (id, name, description, price, images, stock, temp_stock, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING ` + productColumns

func (q *Queries) CreateProduct(ctx context.Context, db DBTX, arg CreateProductParams) (Product, error) {
	return scanProduct(db.QueryRow(ctx, createProduct,
		arg.ID, arg.Name, arg.Description, arg.Price, arg.Images, arg.Stock, arg.TempStock))
}

const getProduct = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

func (q *Queries) GetProduct(ctx context.Context, db DBTX, id uuid.UUID) (Product, error) {
	return scanProduct(db.QueryRow(ctx, getProduct, id))
}

const listProductsByIDs = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`

func (q *Queries) ListProductsByIDs(ctx context.Context, db DBTX, ids []uuid.UUID) ([]Product, error) {
	rows, err := db.Query(ctx, listProductsByIDs, ids)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

const listProducts = `SELECT ` + productColumns + ` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`

func (q *Queries) ListProducts(ctx context.Context, db DBTX, limit, offset int32) ([]Product, error) {
	rows, err := db.Query(ctx, listProducts, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	var items []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Conditional decrement: the row is only touched while enough units remain.
const reserveProductStock = `
UPDATE products SET temp_stock = temp_stock - $2, updated_at = now()
WHERE id = $1 AND temp_stock >= $2`

func (q *Queries) ReserveProductStock(ctx context.Context, db DBTX, id uuid.UUID, amount int32) (int64, error) {
	tag, err := db.Exec(ctx, reserveProductStock, id, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const releaseProductStock = `
UPDATE products SET temp_stock = temp_stock + $2, updated_at = now()
WHERE id = $1`

func (q *Queries) ReleaseProductStock(ctx context.Context, db DBTX, id uuid.UUID, amount int32) (int64, error) {
	tag, err := db.Exec(ctx, releaseProductStock, id, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const commitProductStock = `
UPDATE products SET stock = stock - $2, updated_at = now()
WHERE id = $1`

func (q *Queries) CommitProductStock(ctx context.Context, db DBTX, id uuid.UUID, amount int32) (int64, error) {
	tag, err := db.Exec(ctx, commitProductStock, id, amount)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const productExists = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

func (q *Queries) ProductExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx, productExists, id).Scan(&ok)
	return ok, err
}
