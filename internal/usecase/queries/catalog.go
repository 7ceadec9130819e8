package queries

import (
	"context"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog_mock.go -package=queriesmock

type CatalogReadStore interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*inventory.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*inventory.Product, error)
	FindShippingMethod(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error)
	ListShippingMethods(ctx context.Context) ([]*inventory.ShippingMethod, error)
}

type CatalogQueries interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*inventory.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*inventory.Product, error)
	GetShippingMethod(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error)
	ListShippingMethods(ctx context.Context) ([]*inventory.ShippingMethod, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	p, err := q.store.FindProduct(ctx, id)
	if err != nil {
		return nil, shared.NotFound(err, shared.ErrProductNotFound)
	}
	return p, nil
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, limit, offset int) ([]*inventory.Product, error) {
	return q.store.ListProducts(ctx, ValidateLimit(limit), max(offset, 0))
}

func (q *catalogQueriesImpl) GetShippingMethod(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error) {
	m, err := q.store.FindShippingMethod(ctx, id)
	if err != nil {
		return nil, shared.NotFound(err, shared.ErrShippingMethodNotFound)
	}
	return m, nil
}

func (q *catalogQueriesImpl) ListShippingMethods(ctx context.Context) ([]*inventory.ShippingMethod, error) {
	return q.store.ListShippingMethods(ctx)
}
