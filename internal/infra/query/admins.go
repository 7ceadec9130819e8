package query

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const adminColumns = `id, username, password_hash, is_active, last_login, created_at, updated_at`

type CreateAdminParams struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

const createAdmin = `
INSERT INTO admins (id, username, password_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`

func (q *Queries) CreateAdmin(ctx context.Context, db DBTX, arg CreateAdminParams) error {
	_, err := db.Exec(ctx, createAdmin, arg.ID, arg.Username, arg.PasswordHash, arg.IsActive, arg.CreatedAt)
	return err
}

const findAdminByUsername = `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`

func (q *Queries) FindAdminByUsername(ctx context.Context, db DBTX, username string) (Admin, error) {
	var a Admin
	err := db.QueryRow(ctx, findAdminByUsername, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const updateAdminLastLogin = `UPDATE admins SET last_login = $2, updated_at = $2 WHERE id = $1`

func (q *Queries) UpdateAdminLastLogin(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	_, err := db.Exec(ctx, updateAdminLastLogin, id, at)
	return err
}
