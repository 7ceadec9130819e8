package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account that manages orders and the catalog.
type Admin struct {
	id           uuid.UUID
	username     Username
	passwordHash string
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAdmin(username Username, passwordHash string, now time.Time) *Admin {
	return &Admin{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func Reconstruct(
	id uuid.UUID,
	username Username,
	passwordHash string,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Admin {
	return &Admin{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Admin) ID() uuid.UUID         { return a.id }
func (a *Admin) Username() Username    { return a.username }
func (a *Admin) PasswordHash() string  { return a.passwordHash }
func (a *Admin) LastLogin() *time.Time { return a.lastLogin }
func (a *Admin) IsActive() bool        { return a.isActive }
func (a *Admin) CreatedAt() time.Time  { return a.createdAt }
func (a *Admin) UpdatedAt() time.Time  { return a.updatedAt }

func (a *Admin) RecordLogin(at time.Time) {
	a.lastLogin = &at
	a.updatedAt = at
}
