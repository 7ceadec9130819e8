package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/password"
	"shop-backend/internal/usecase/shared"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

var (
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrAdminInactive        = errs.New("admin inactive")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type TokenIssuer interface {
	GenerateToken(adminID uuid.UUID, username string) (string, error)
	TokenDuration() time.Duration
}

type LoginResult struct {
	AdminID     uuid.UUID
	Username    string
	AccessToken string
	ExpiresAt   time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, username, pass string) (*LoginResult, error)
	// EnsureAdmin creates the account unless the username is taken.
	EnsureAdmin(ctx context.Context, username, pass string) (bool, error)
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	clock  clock.Clock
	logger *slog.Logger
}

func NewAuthCommands(uow shared.UnitOfWork, tokens TokenIssuer, clock clock.Clock, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		uow:    uow,
		tokens: tokens,
		clock:  clock,
		logger: logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, username, pass string) (*LoginResult, error) {
	credentials, err := admin.NewCredentials(username, pass)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	var account *admin.Admin
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		account, err = tx.Admins().FindByUsername(ctx, credentials.Username())
		return err
	})
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, errs.Mark(admin.ErrInvalidCredentials, ErrAuthenticationFailed)
		}
		return nil, errs.Wrap(err, "find admin")
	}
	if !account.IsActive() {
		return nil, errs.Mark(ErrAdminInactive, ErrAuthenticationFailed)
	}
	if err := password.ComparePassword(account.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, errs.Mark(admin.ErrInvalidCredentials, ErrAuthenticationFailed)
	}

	token, err := a.tokens.GenerateToken(account.ID(), account.Username().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().UpdateLastLogin(ctx, account.ID(), now)
	})
	if err != nil {
		// Login already succeeded; only the audit timestamp is lost.
		a.logger.Warn("failed to update last login", "admin_id", account.ID(), "error", err.Error())
	}

	return &LoginResult{
		AdminID:     account.ID(),
		Username:    account.Username().Value(),
		AccessToken: token,
		ExpiresAt:   now.Add(a.tokens.TokenDuration()),
	}, nil
}

func (a *authCommandsImpl) EnsureAdmin(ctx context.Context, username, pass string) (bool, error) {
	credentials, err := admin.NewCredentials(username, pass)
	if err != nil {
		return false, errs.Mark(err, errs.ErrInvalidInput)
	}
	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return false, errs.Wrap(err, "hash admin password")
	}

	created := false
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Admins().FindByUsername(ctx, credentials.Username())
		if err == nil {
			return nil
		}
		if !errs.Is(err, errs.ErrNotFound) {
			return err
		}
		created = true
		return tx.Admins().Create(ctx, admin.NewAdmin(credentials.Username(), hash, a.clock.Now()))
	})
	if err != nil {
		return false, errs.Wrap(err, "ensure admin")
	}
	return created, nil
}
