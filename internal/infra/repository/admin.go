package repository

import (
	"context"
	"time"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/infra"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type AdminQueries interface {
	CreateAdmin(ctx context.Context, db query.DBTX, arg query.CreateAdminParams) error
	FindAdminByUsername(ctx context.Context, db query.DBTX, username string) (query.Admin, error)
	UpdateAdminLastLogin(ctx context.Context, db query.DBTX, id uuid.UUID, at time.Time) error
}

type AdminRepository struct {
	queries AdminQueries
	db      query.DBTX
}

func NewAdminRepository(queries AdminQueries, db query.DBTX) *AdminRepository {
	return &AdminRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username admin.Username) (*admin.Admin, error) {
	row, err := r.queries.FindAdminByUsername(ctx, r.db, username.Value())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find admin", err)
	}
	a, err := converter.AdminFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode admin", err, infra.KindDBFailure)
	}
	return a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	if err := r.queries.CreateAdmin(ctx, r.db, converter.AdminToCreateParams(a)); err != nil {
		return infra.WrapRepoErr("failed to create admin", err)
	}
	return nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.queries.UpdateAdminLastLogin(ctx, r.db, id, at); err != nil {
		return infra.WrapRepoErr("failed to update admin last login", err)
	}
	return nil
}
