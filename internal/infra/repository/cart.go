package repository

import (
	"context"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"
	"shop-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartQueries interface {
	InsertCartIfAbsent(ctx context.Context, db query.DBTX, id string, createdAt, expiresAt time.Time) (bool, error)
	LockCart(ctx context.Context, db query.DBTX, id string) (query.Cart, error)
	ListCartItems(ctx context.Context, db query.DBTX, cartID string) ([]query.CartItem, error)
	AddCartItemAmount(ctx context.Context, db query.DBTX, cartID string, productID uuid.UUID, amount int32) error
	SetCartItemAmount(ctx context.Context, db query.DBTX, cartID string, productID uuid.UUID, amount int32) (int64, error)
	DeleteCartItem(ctx context.Context, db query.DBTX, cartID string, productID uuid.UUID) (int64, error)
	SetCartShippingMethod(ctx context.Context, db query.DBTX, id string, methodID pgtype.UUID) (int64, error)
	SetCartCustomerDetails(ctx context.Context, db query.DBTX, id string, details []byte) (int64, error)
	LinkCartOrder(ctx context.Context, db query.DBTX, id string, orderID uuid.UUID, expiresAt time.Time) (int64, error)
	SetCartExpiry(ctx context.Context, db query.DBTX, id string, expiresAt time.Time) (int64, error)
	DeleteCart(ctx context.Context, db query.DBTX, id string) (int64, error)
}

type CartRepository struct {
	queries CartQueries
	db      query.DBTX
}

func NewCartRepository(queries CartQueries, db query.DBTX) *CartRepository {
	return &CartRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CartRepository) Ensure(ctx context.Context, c *cart.Cart) (bool, error) {
	created, err := r.queries.InsertCartIfAbsent(ctx, r.db, c.ID().String(), c.CreatedAt(), c.ExpiresAt())
	if err != nil {
		return false, infra.WrapRepoErr("failed to ensure cart", err)
	}
	return created, nil
}

func (r *CartRepository) Lock(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	row, err := r.queries.LockCart(ctx, r.db, id.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock cart", err)
	}

	items, err := r.queries.ListCartItems(ctx, r.db, id.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart items", err)
	}

	c, err := converter.CartFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart", err, infra.KindDBFailure)
	}
	return c, nil
}

func (r *CartRepository) AddItemAmount(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) error {
	// #nosec G115 -- amount is capped by cart.ValidateAmount
	if err := r.queries.AddCartItemAmount(ctx, r.db, id.String(), productID, int32(amount)); err != nil {
		return infra.WrapRepoErr("failed to add cart item", err)
	}
	return nil
}

func (r *CartRepository) SetItemAmount(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) error {
	n, err := r.queries.SetCartItemAmount(ctx, r.db, id.String(), productID, int32(amount)) // #nosec G115
	return affectedOne("cart item", n, err)
}

func (r *CartRepository) DeleteItem(ctx context.Context, id cart.ID, productID uuid.UUID) error {
	n, err := r.queries.DeleteCartItem(ctx, r.db, id.String(), productID)
	return affectedOne("cart item", n, err)
}

func (r *CartRepository) SetShippingMethod(ctx context.Context, id cart.ID, methodID *uuid.UUID) error {
	n, err := r.queries.SetCartShippingMethod(ctx, r.db, id.String(), pgconv.UUIDPtrToPgtype(methodID))
	return affectedOne("cart", n, err)
}

func (r *CartRepository) SetCustomer(ctx context.Context, id cart.ID, details *cart.CustomerDetails) error {
	raw, err := converter.CustomerToJSON(details)
	if err != nil {
		return infra.WrapRepoErr("failed to encode customer details", err, infra.KindDBFailure)
	}
	n, err := r.queries.SetCartCustomerDetails(ctx, r.db, id.String(), raw)
	return affectedOne("cart", n, err)
}

func (r *CartRepository) LinkOrder(ctx context.Context, id cart.ID, orderID uuid.UUID, expiresAt time.Time) error {
	n, err := r.queries.LinkCartOrder(ctx, r.db, id.String(), orderID, expiresAt)
	return affectedOne("cart", n, err)
}

func (r *CartRepository) SetExpiry(ctx context.Context, id cart.ID, expiresAt time.Time) error {
	n, err := r.queries.SetCartExpiry(ctx, r.db, id.String(), expiresAt)
	return affectedOne("cart", n, err)
}

func (r *CartRepository) Delete(ctx context.Context, id cart.ID) error {
	n, err := r.queries.DeleteCart(ctx, r.db, id.String())
	return affectedOne("cart", n, err)
}

// affectedOne turns a zero-row write into a not-found repository error.
func affectedOne(entity string, n int64, err error) error {
	if err != nil {
		return infra.WrapRepoErr("failed to update "+entity, err)
	}
	if n == 0 {
		return infra.WrapRepoErr(entity+" not found", nil, infra.KindNotFound)
	}
	return nil
}
