package repository

import (
	"context"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type InventoryQueries interface {
	ReserveProductStock(ctx context.Context, db query.DBTX, id uuid.UUID, amount int32) (int64, error)
	ReleaseProductStock(ctx context.Context, db query.DBTX, id uuid.UUID, amount int32) (int64, error)
	CommitProductStock(ctx context.Context, db query.DBTX, id uuid.UUID, amount int32) (int64, error)
	ProductExists(ctx context.Context, db query.DBTX, id uuid.UUID) (bool, error)
	ReserveShippingSlot(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
	ReleaseShippingSlot(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
	CommitShippingSlot(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
	ShippingMethodExists(ctx context.Context, db query.DBTX, id uuid.UUID) (bool, error)
	ListProductsByIDs(ctx context.Context, db query.DBTX, ids []uuid.UUID) ([]query.Product, error)
	GetShippingMethod(ctx context.Context, db query.DBTX, id uuid.UUID) (query.ShippingMethod, error)
	CreateProduct(ctx context.Context, db query.DBTX, arg query.CreateProductParams) (query.Product, error)
	CreateShippingMethod(ctx context.Context, db query.DBTX, arg query.CreateShippingMethodParams) (query.ShippingMethod, error)
}

type InventoryRepository struct {
	queries InventoryQueries
	db      query.DBTX
}

func NewInventoryRepository(queries InventoryQueries, db query.DBTX) *InventoryRepository {
	return &InventoryRepository{
		queries: queries,
		db:      db,
	}
}

// ReserveProduct takes amount units from temp_stock in one conditional UPDATE.
// When no row moves, the product is either missing or short on stock.
func (r *InventoryRepository) ReserveProduct(ctx context.Context, productID uuid.UUID, amount int) error {
	n, err := r.queries.ReserveProductStock(ctx, r.db, productID, int32(amount)) // #nosec G115
	if err != nil {
		return infra.WrapRepoErr("failed to reserve product stock", err)
	}
	if n == 1 {
		return nil
	}
	return r.missingOrShort(r.queries.ProductExists(ctx, r.db, productID))
}

func (r *InventoryRepository) ReleaseProduct(ctx context.Context, productID uuid.UUID, amount int) error {
	n, err := r.queries.ReleaseProductStock(ctx, r.db, productID, int32(amount)) // #nosec G115
	return affectedOne("product", n, err)
}

func (r *InventoryRepository) CommitProduct(ctx context.Context, productID uuid.UUID, amount int) error {
	n, err := r.queries.CommitProductStock(ctx, r.db, productID, int32(amount)) // #nosec G115
	return affectedOne("product", n, err)
}

func (r *InventoryRepository) ReserveShipping(ctx context.Context, methodID uuid.UUID) error {
	n, err := r.queries.ReserveShippingSlot(ctx, r.db, methodID)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve shipping slot", err)
	}
	if n == 1 {
		return nil
	}
	return r.missingOrShort(r.queries.ShippingMethodExists(ctx, r.db, methodID))
}

func (r *InventoryRepository) ReleaseShipping(ctx context.Context, methodID uuid.UUID) error {
	n, err := r.queries.ReleaseShippingSlot(ctx, r.db, methodID)
	return affectedOne("shipping method", n, err)
}

func (r *InventoryRepository) CommitShipping(ctx context.Context, methodID uuid.UUID) error {
	n, err := r.queries.CommitShippingSlot(ctx, r.db, methodID)
	return affectedOne("shipping method", n, err)
}

func (r *InventoryRepository) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*inventory.Product, error) {
	rows, err := r.queries.ListProductsByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load products", err)
	}
	out := make(map[uuid.UUID]*inventory.Product, len(rows))
	for _, row := range rows {
		out[row.ID] = converter.ProductFromRow(row)
	}
	return out, nil
}

func (r *InventoryRepository) ShippingMethodByID(ctx context.Context, id uuid.UUID) (*inventory.ShippingMethod, error) {
	row, err := r.queries.GetShippingMethod(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load shipping method", err)
	}
	return converter.ShippingMethodFromRow(row), nil
}

func (r *InventoryRepository) CreateProduct(ctx context.Context, p *inventory.Product) error {
	if _, err := r.queries.CreateProduct(ctx, r.db, converter.ProductToCreateParams(p)); err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *InventoryRepository) CreateShippingMethod(ctx context.Context, m *inventory.ShippingMethod) error {
	if _, err := r.queries.CreateShippingMethod(ctx, r.db, converter.ShippingMethodToCreateParams(m)); err != nil {
		return infra.WrapRepoErr("failed to create shipping method", err)
	}
	return nil
}

func (r *InventoryRepository) missingOrShort(exists bool, err error) error {
	if err != nil {
		return infra.WrapRepoErr("failed to check inventory item", err)
	}
	if !exists {
		return infra.WrapRepoErr("inventory item not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("not enough stock available", nil, infra.KindConditionFailed)
}
