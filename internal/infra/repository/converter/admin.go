package converter

import (
	"shop-backend/internal/domain/admin"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/pkg/pgconv"
)

func AdminFromRow(r query.Admin) (*admin.Admin, error) {
	username, err := admin.NewUsername(r.Username)
	if err != nil {
		return nil, err
	}
	return admin.Reconstruct(
		r.ID, username, r.PasswordHash, pgconv.TimePtrFromPgtype(r.LastLogin),
		r.IsActive, r.CreatedAt, r.UpdatedAt,
	), nil
}

func AdminToCreateParams(a *admin.Admin) query.CreateAdminParams {
	return query.CreateAdminParams{
		ID:           a.ID(),
		Username:     a.Username().Value(),
		PasswordHash: a.PasswordHash(),
		IsActive:     a.IsActive(),
		CreatedAt:    a.CreatedAt(),
	}
}
