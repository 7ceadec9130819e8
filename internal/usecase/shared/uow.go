package shared

import (
	"context"
	"time"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one open transaction. Missing rows are
// reported with errs.ErrNotFound, failed conditional stock updates with
// errs.ErrInsufficientStock.
type Tx interface {
	Carts() CartRepository
	Inventory() InventoryRepository
	Orders() OrderRepository
	Admins() AdminRepository
}

type CartRepository interface {
	// Ensure inserts an empty cart unless one with the same id exists.
	Ensure(ctx context.Context, c *cart.Cart) (bool, error)
	// Lock loads the cart with its items and holds its row until the transaction ends.
	Lock(ctx context.Context, id cart.ID) (*cart.Cart, error)
	AddItemAmount(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) error
	SetItemAmount(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) error
	DeleteItem(ctx context.Context, id cart.ID, productID uuid.UUID) error
	SetShippingMethod(ctx context.Context, id cart.ID, methodID *uuid.UUID) error
	SetCustomer(ctx context.Context, id cart.ID, details *cart.CustomerDetails) error
	LinkOrder(ctx context.Context, id cart.ID, orderID uuid.UUID, expiresAt time.Time) error
	SetExpiry(ctx context.Context, id cart.ID, expiresAt time.Time) error
	Delete(ctx context.Context, id cart.ID) error
}

type InventoryRepository interface {
	ReserveProduct(ctx context.Context, productID uuid.UUID, amount int) error
	ReleaseProduct(ctx context.Context, productID uuid.UUID, amount int) error
	CommitProduct(ctx context.Context, productID uuid.UUID, amount int) error
	ReserveShipping(ctx context.Context, methodID uuid.UUID) error
	ReleaseShipping(ctx context.Context, methodID uuid.UUID) error
	CommitShipping(ctx context.Context, methodID uuid.UUID) error
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*inventory.Product, error)
	ShippingMethodByID(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error)
	CreateProduct(ctx context.Context, p *inventory.Product) error
	CreateShippingMethod(ctx context.Context, m *inventory.ShippingMethod) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Lock(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// UpdateStatus persists a transition out of pending.
	UpdateStatus(ctx context.Context, o *order.Order) error
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username admin.Username) (*admin.Admin, error)
	Create(ctx context.Context, a *admin.Admin) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
