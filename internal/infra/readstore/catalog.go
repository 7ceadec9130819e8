package readstore

import (
	"context"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type CatalogReadQueries interface {
	GetProduct(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Product, error)
	ListProducts(ctx context.Context, db query.DBTX, limit, offset int32) ([]query.Product, error)
	GetShippingMethod(ctx context.Context, db query.DBTX, id uuid.UUID) (query.ShippingMethod, error)
	ListShippingMethods(ctx context.Context, db query.DBTX) ([]query.ShippingMethod, error)
}

type CatalogReadStore struct {
	queries CatalogReadQueries
	db      query.DBTX
}

func NewCatalogReadStore(queries CatalogReadQueries, db query.DBTX) *CatalogReadStore {
	return &CatalogReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *CatalogReadStore) FindProduct(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	row, err := s.queries.GetProduct(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get product", err)
	}
	return converter.ProductFromRow(row), nil
}

func (s *CatalogReadStore) ListProducts(ctx context.Context, limit, offset int) ([]*inventory.Product, error) {
	rows, err := s.queries.ListProducts(ctx, s.db, int32(limit), int32(offset)) // #nosec G115 -- bounded by queries.ValidateLimit
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	out := make([]*inventory.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, converter.ProductFromRow(r))
	}
	return out, nil
}

func (s *CatalogReadStore) FindShippingMethod(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error) {
	row, err := s.queries.GetShippingMethod(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get shipping method", err)
	}
	return converter.ShippingMethodFromRow(row), nil
}

func (s *CatalogReadStore) ListShippingMethods(ctx context.Context) ([]*inventory.ShippingMethod, error) {
	rows, err := s.queries.ListShippingMethods(ctx, s.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shipping methods", err)
	}
	out := make([]*inventory.ShippingMethod, 0, len(rows))
	for _, r := range rows {
		out = append(out, converter.ShippingMethodFromRow(r))
	}
	return out, nil
}
