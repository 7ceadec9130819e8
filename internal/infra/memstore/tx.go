package memstore

import (
	"context"
	"slices"
	"time"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errShortStock   = errs.New("not enough stock available")
	errStockBounds  = errs.New("stock counters out of bounds")
	errDuplicate    = errs.New("duplicate key")
	errNotPending   = errs.New("order is not pending")
	errUnknownOrder = errs.New("cart references an unknown order")
)

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Carts() shared.CartRepository          { return cartRepo{t} }
func (t *tx) Inventory() shared.InventoryRepository { return inventoryRepo{t} }
func (t *tx) Orders() shared.OrderRepository        { return orderRepo{t} }
func (t *tx) Admins() shared.AdminRepository        { return adminRepo{t} }

type cartRepo struct{ *tx }

func (r cartRepo) Ensure(_ context.Context, c *cart.Cart) (bool, error) {
	if err := r.store.fault("Ensure"); err != nil {
		return false, err
	}
	if _, ok := r.st.carts[c.ID()]; ok {
		return false, nil
	}
	r.st.carts[c.ID()] = &cartRow{createdAt: c.CreatedAt(), expiresAt: c.ExpiresAt()}
	return true, nil
}

func (r cartRepo) Lock(_ context.Context, id cart.ID) (*cart.Cart, error) {
	if err := r.store.fault("Lock"); err != nil {
		return nil, err
	}
	row, ok := r.st.carts[id]
	if !ok {
		return nil, notFound("cart")
	}
	return row.toDomain(id), nil
}

// update swaps in a modified copy of the cart row.
func (r cartRepo) update(method string, id cart.ID, fn func(row *cartRow) error) error {
	if err := r.store.fault(method); err != nil {
		return err
	}
	row, ok := r.st.carts[id]
	if !ok {
		return notFound("cart")
	}
	next := row.clone()
	if err := fn(next); err != nil {
		return err
	}
	r.st.carts[id] = next
	return nil
}

func (r cartRepo) AddItemAmount(_ context.Context, id cart.ID, productID uuid.UUID, amount int) error {
	if _, ok := r.st.products[productID]; !ok {
		return errs.Mark(notFound("product"), errs.ErrInvalidInput)
	}
	return r.update("AddItemAmount", id, func(row *cartRow) error {
		i := slices.IndexFunc(row.items, func(it cart.LineItem) bool { return it.ProductID == productID })
		if i < 0 {
			row.items = append(row.items, cart.LineItem{ProductID: productID, Amount: amount})
			return nil
		}
		row.items[i].Amount += amount
		return nil
	})
}

func (r cartRepo) SetItemAmount(_ context.Context, id cart.ID, productID uuid.UUID, amount int) error {
	return r.update("SetItemAmount", id, func(row *cartRow) error {
		i := slices.IndexFunc(row.items, func(it cart.LineItem) bool { return it.ProductID == productID })
		if i < 0 {
			return notFound("cart item")
		}
		row.items[i].Amount = amount
		return nil
	})
}

func (r cartRepo) DeleteItem(_ context.Context, id cart.ID, productID uuid.UUID) error {
	return r.update("DeleteItem", id, func(row *cartRow) error {
		i := slices.IndexFunc(row.items, func(it cart.LineItem) bool { return it.ProductID == productID })
		if i < 0 {
			return notFound("cart item")
		}
		row.items = slices.Delete(row.items, i, i+1)
		return nil
	})
}

func (r cartRepo) SetShippingMethod(_ context.Context, id cart.ID, methodID *uuid.UUID) error {
	if methodID != nil {
		if _, ok := r.st.methods[*methodID]; !ok {
			return errs.Mark(notFound("shipping method"), errs.ErrInvalidInput)
		}
	}
	return r.update("SetShippingMethod", id, func(row *cartRow) error {
		row.shipping = methodID
		return nil
	})
}

func (r cartRepo) SetCustomer(_ context.Context, id cart.ID, details *cart.CustomerDetails) error {
	return r.update("SetCustomer", id, func(row *cartRow) error {
		row.customer = details
		return nil
	})
}

func (r cartRepo) LinkOrder(_ context.Context, id cart.ID, orderID uuid.UUID, expiresAt time.Time) error {
	if _, ok := r.st.orders[orderID]; !ok {
		return errs.Mark(errUnknownOrder, errs.ErrInvalidInput)
	}
	return r.update("LinkOrder", id, func(row *cartRow) error {
		row.orderID = &orderID
		row.expiresAt = expiresAt
		return nil
	})
}

func (r cartRepo) SetExpiry(_ context.Context, id cart.ID, expiresAt time.Time) error {
	return r.update("SetExpiry", id, func(row *cartRow) error {
		row.expiresAt = expiresAt
		return nil
	})
}

func (r cartRepo) Delete(_ context.Context, id cart.ID) error {
	if err := r.store.fault("Delete"); err != nil {
		return err
	}
	if _, ok := r.st.carts[id]; !ok {
		return notFound("cart")
	}
	delete(r.st.carts, id)
	return nil
}

type inventoryRepo struct{ *tx }

// adjustProduct applies deltas to stock and temp_stock and enforces
// 0 <= temp_stock <= stock, like the table's check constraint.
func (r inventoryRepo) adjustProduct(method string, id uuid.UUID, dStock, dTemp int) error {
	if err := r.store.fault(method); err != nil {
		return err
	}
	p, ok := r.st.products[id]
	if !ok {
		return notFound("product")
	}
	stock, temp := p.Stock()+dStock, p.TempStock()+dTemp
	if temp < 0 || temp > stock {
		return errs.Mark(errStockBounds, errs.ErrInvalidInput)
	}
	r.st.products[id] = inventory.ReconstructProduct(
		p.ID(), p.Name(), p.Description(), p.Price(), p.Images(), stock, temp, p.CreatedAt(),
	)
	return nil
}

func (r inventoryRepo) adjustShipping(method string, id uuid.UUID, dStock, dTemp int) error {
	if err := r.store.fault(method); err != nil {
		return err
	}
	m, ok := r.st.methods[id]
	if !ok {
		return notFound("shipping method")
	}
	stock, temp := m.Stock()+dStock, m.TempStock()+dTemp
	if temp < 0 || temp > stock {
		return errs.Mark(errStockBounds, errs.ErrInvalidInput)
	}
	params := inventory.ShippingMethodParams{
		Name:        m.Name(),
		Description: m.Description(),
		Type:        m.Type().String(),
		Price:       m.Price(),
		FreeAbove:   m.FreeAbove(),
		Window:      m.Window(),
		Stock:       stock,
	}
	r.st.methods[id] = inventory.ReconstructShippingMethod(m.ID(), params, temp, m.CreatedAt())
	return nil
}

func (r inventoryRepo) ReserveProduct(_ context.Context, productID uuid.UUID, amount int) error {
	if p, ok := r.st.products[productID]; ok && p.TempStock() < amount {
		return errs.Mark(errShortStock, errs.ErrInsufficientStock)
	}
	return r.adjustProduct("ReserveProduct", productID, 0, -amount)
}

func (r inventoryRepo) ReleaseProduct(_ context.Context, productID uuid.UUID, amount int) error {
	return r.adjustProduct("ReleaseProduct", productID, 0, amount)
}

func (r inventoryRepo) CommitProduct(_ context.Context, productID uuid.UUID, amount int) error {
	return r.adjustProduct("CommitProduct", productID, -amount, 0)
}

func (r inventoryRepo) ReserveShipping(_ context.Context, methodID uuid.UUID) error {
	if m, ok := r.st.methods[methodID]; ok && m.TempStock() <= 0 {
		return errs.Mark(errShortStock, errs.ErrInsufficientStock)
	}
	return r.adjustShipping("ReserveShipping", methodID, 0, -1)
}

func (r inventoryRepo) ReleaseShipping(_ context.Context, methodID uuid.UUID) error {
	return r.adjustShipping("ReleaseShipping", methodID, 0, 1)
}

func (r inventoryRepo) CommitShipping(_ context.Context, methodID uuid.UUID) error {
	return r.adjustShipping("CommitShipping", methodID, -1, 0)
}

func (r inventoryRepo) ProductsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*inventory.Product, error) {
	out := make(map[uuid.UUID]*inventory.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r inventoryRepo) ShippingMethodByID(_ context.Context, id uuid.UUID) (*inventory.ShippingMethod, error) {
	m, ok := r.st.methods[id]
	if !ok {
		return nil, notFound("shipping method")
	}
	return m, nil
}

func (r inventoryRepo) CreateProduct(_ context.Context, p *inventory.Product) error {
	if _, ok := r.st.products[p.ID()]; ok {
		return errs.Mark(errDuplicate, errs.ErrConflict)
	}
	r.st.products[p.ID()] = p
	return nil
}

func (r inventoryRepo) CreateShippingMethod(_ context.Context, m *inventory.ShippingMethod) error {
	if _, ok := r.st.methods[m.ID()]; ok {
		return errs.Mark(errDuplicate, errs.ErrConflict)
	}
	r.st.methods[m.ID()] = m
	return nil
}

type orderRepo struct{ *tx }

func (r orderRepo) Create(_ context.Context, o *order.Order) error {
	if err := r.store.fault("CreateOrder"); err != nil {
		return err
	}
	if _, ok := r.st.orders[o.ID()]; ok {
		return errs.Mark(errDuplicate, errs.ErrConflict)
	}
	r.st.orders[o.ID()] = copyOrder(o)
	return nil
}

func (r orderRepo) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	return copyOrder(o), nil
}

func (r orderRepo) Lock(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepo) UpdateStatus(_ context.Context, o *order.Order) error {
	stored, ok := r.st.orders[o.ID()]
	if !ok {
		return notFound("order")
	}
	if !stored.IsPending() {
		return errs.Mark(errNotPending, errs.ErrConflict)
	}
	r.st.orders[o.ID()] = copyOrder(o)
	return nil
}

type adminRepo struct{ *tx }

func (r adminRepo) FindByUsername(_ context.Context, username admin.Username) (*admin.Admin, error) {
	a, ok := r.st.admins[username.Value()]
	if !ok {
		return nil, notFound("admin")
	}
	return a, nil
}

func (r adminRepo) Create(_ context.Context, a *admin.Admin) error {
	if _, ok := r.st.admins[a.Username().Value()]; ok {
		return errs.Mark(errDuplicate, errs.ErrConflict)
	}
	r.st.admins[a.Username().Value()] = a
	return nil
}

func (r adminRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for name, a := range r.st.admins {
		if a.ID() == id {
			r.st.admins[name] = admin.Reconstruct(a.ID(), a.Username(), a.PasswordHash(), &at, a.IsActive(), a.CreatedAt(), at)
			return nil
		}
	}
	return notFound("admin")
}
