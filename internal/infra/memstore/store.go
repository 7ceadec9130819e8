// Package memstore keeps carts, inventory and orders in process memory. It
// honours the same conditional-update contract as the Postgres repositories
// and serializes transactions behind one mutex, so engine behaviour can be
// exercised without a database.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type cartRow struct {
	items     []cart.LineItem
	shipping  *uuid.UUID
	customer  *cart.CustomerDetails
	orderID   *uuid.UUID
	createdAt time.Time
	expiresAt time.Time
}

func (r *cartRow) clone() *cartRow {
	out := *r
	out.items = slices.Clone(r.items)
	return &out
}

func (r *cartRow) toDomain(id cart.ID) *cart.Cart {
	return cart.Reconstruct(id, slices.Clone(r.items), r.shipping, r.customer, r.orderID, r.createdAt, r.expiresAt)
}

// Stored values are never mutated in place; writers swap in new values, so a
// shallow copy of the maps is a complete snapshot.
type state struct {
	products map[uuid.UUID]*inventory.Product
	methods  map[uuid.UUID]*inventory.ShippingMethod
	carts    map[cart.ID]*cartRow
	orders   map[uuid.UUID]*order.Order
	admins   map[string]*admin.Admin
}

func (s *state) clone() *state {
	return &state{
		products: cloneMap(s.products),
		methods:  cloneMap(s.methods),
		carts:    cloneMap(s.carts),
		orders:   cloneMap(s.orders),
		admins:   cloneMap(s.admins),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	mu     sync.Mutex
	data   *state
	faults map[string]error
}

func New() *Store {
	return &Store{
		data: &state{
			products: map[uuid.UUID]*inventory.Product{},
			methods:  map[uuid.UUID]*inventory.ShippingMethod{},
			carts:    map[cart.ID]*cartRow{},
			orders:   map[uuid.UUID]*order.Order{},
			admins:   map[string]*admin.Admin{},
		},
		faults: map[string]error{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

// Within runs fn against a private copy of the store and publishes the copy
// only when fn succeeds.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "transaction not started")
	}
	work := s.data.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// FailNext makes the next call to the named repository method return err.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method] = err
}

// fault is only called from inside Within, which holds mu.
func (s *Store) fault(method string) error {
	err, ok := s.faults[method]
	if !ok {
		return nil
	}
	delete(s.faults, method)
	return err
}

func (s *Store) PutProduct(p *inventory.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.ID()] = p
}

func (s *Store) PutShippingMethod(m *inventory.ShippingMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.methods[m.ID()] = m
}

func (s *Store) PutCart(c *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.carts[c.ID()] = &cartRow{
		items:     slices.Clone(c.Items()),
		shipping:  c.ShippingMethodID(),
		customer:  c.Customer(),
		orderID:   c.OrderID(),
		createdAt: c.CreatedAt(),
		expiresAt: c.ExpiresAt(),
	}
}

func (s *Store) PutOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[o.ID()] = copyOrder(o)
}

func (s *Store) Product(id uuid.UUID) (*inventory.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.products[id]
	return p, ok
}

func (s *Store) ShippingMethod(id uuid.UUID) (*inventory.ShippingMethod, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data.methods[id]
	return m, ok
}

func (s *Store) Order(id uuid.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	if !ok {
		return nil, false
	}
	return copyOrder(o), true
}

// ReservedFor sums what every live cart holds of a product.
func (s *Store) ReservedFor(productID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, row := range s.data.carts {
		for _, it := range row.items {
			if it.ProductID == productID {
				total += it.Amount
			}
		}
	}
	return total
}

// FindByID and ListExpiredIDs let the store stand in for the cart read store.
func (s *Store) FindByID(_ context.Context, id cart.ID) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.data.carts[id]
	if !ok {
		return nil, notFound("cart")
	}
	return row.toDomain(id), nil
}

func (s *Store) ListExpiredIDs(_ context.Context, now time.Time, limit int) ([]cart.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]cart.ID, 0)
	for id, row := range s.data.carts {
		if !now.Before(row.expiresAt) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b cart.ID) int {
		return s.data.carts[a].expiresAt.Compare(s.data.carts[b].expiresAt)
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func notFound(entity string) error {
	return errs.Mark(errs.Newf("%s not found", entity), errs.ErrNotFound)
}

func copyOrder(o *order.Order) *order.Order {
	var txn *order.Transaction
	if t := o.Transaction(); t != nil {
		cp := *t
		txn = &cp
	}
	return order.Reconstruct(o.ID(), o.CartID(), o.Status(), o.Snapshot(), o.Payment(), txn, o.CreatedAt(), o.UpdatedAt())
}
