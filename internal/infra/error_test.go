//go:build unit

package infra_test

import (
	"testing"

	"shop-backend/internal/infra"
	"shop-backend/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
		mark error
	}{
		{name: "no rows", err: pgx.ErrNoRows, kind: infra.KindNotFound, mark: errs.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, kind: infra.KindDuplicateKey, mark: errs.ErrConflict},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, kind: infra.KindForeignKeyViolated, mark: errs.ErrInvalidInput},
		{name: "check", err: &pgconn.PgError{Code: "23514"}, kind: infra.KindCheckViolated, mark: errs.ErrInvalidInput},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, kind: infra.KindDBFailure},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op failed", c.err)

			assert.True(t, infra.IsKind(err, c.kind))
			if c.mark != nil {
				assert.True(t, errs.Is(err, c.mark))
			} else {
				assert.Nil(t, errs.Kind(err))
			}
		})
	}

	t.Run("explicit kind wins", func(t *testing.T) {
		err := infra.WrapRepoErr("not enough stock", nil, infra.KindConditionFailed)
		assert.True(t, infra.IsKind(err, infra.KindConditionFailed))
		assert.True(t, errs.Is(err, errs.ErrInsufficientStock))
		assert.Contains(t, err.Error(), "not enough stock")
	})
}
