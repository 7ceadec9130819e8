//go:build unit

package password_test

import (
	"testing"

	"shop-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, password.ComparePassword(hash, "correct-horse"))
	assert.ErrorIs(t, password.ComparePassword(hash, "wrong-horse"), password.ErrMismatch)
	assert.ErrorIs(t, password.ComparePassword("", "x"), password.ErrInvalidPassword)
}

func TestHashRejectsShortPassword(t *testing.T) {
	_, err := password.HashPassword("short")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}
