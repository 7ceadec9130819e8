//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shop-backend/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// CreateTestProduct inserts a product whose whole stock is free to reserve.
func CreateTestProduct(t *testing.T, db DBLike, name string, price int64, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, price, stock, temp_stock) VALUES ($1, $2, $3, $4, $4)",
		id, name, price, stock)
	require.NoError(t, err)
	return id
}

// CreateTestShippingMethod inserts a pickup method (no delivery window).
func CreateTestShippingMethod(t *testing.T, db DBLike, name string, price int64, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO shipping_methods (id, name, type, price, stock, temp_stock) VALUES ($1, $2, 'pickup', $3, $4, $4)",
		id, name, price, stock)
	require.NoError(t, err)
	return id
}

func CreateTestAdmin(t *testing.T, db DBLike, username, pass string) uuid.UUID {
	t.Helper()

	hash, err := password.HashPasswordWithCost(pass, bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	tag, err := db.Exec(context.Background(),
		"INSERT INTO admins (id, username, password_hash) VALUES ($1, $2, $3) ON CONFLICT (username) DO NOTHING",
		id, username, hash)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(context.Background(),
			"SELECT id FROM admins WHERE username = $1", username).Scan(&id))
	}
	return id
}

// ProductStock returns (stock, temp_stock).
func ProductStock(t *testing.T, db DBLike, id uuid.UUID) (int, int) {
	t.Helper()

	var stock, temp int
	err := db.QueryRow(context.Background(),
		"SELECT stock, temp_stock FROM products WHERE id = $1", id).Scan(&stock, &temp)
	require.NoError(t, err)
	return stock, temp
}

// ShippingStock returns (stock, temp_stock).
func ShippingStock(t *testing.T, db DBLike, id uuid.UUID) (int, int) {
	t.Helper()

	var stock, temp int
	err := db.QueryRow(context.Background(),
		"SELECT stock, temp_stock FROM shipping_methods WHERE id = $1", id).Scan(&stock, &temp)
	require.NoError(t, err)
	return stock, temp
}

// ExpireCart moves a cart's expiry into the past so the sweeper picks it up.
func ExpireCart(t *testing.T, db DBLike, cartID string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE carts SET expires_at = $2 WHERE id = $1", cartID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
}

func CartExists(t *testing.T, db DBLike, cartID string) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)", cartID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
