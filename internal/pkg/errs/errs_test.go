//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"shop-backend/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndKind(t *testing.T) {
	errCartMissing := errs.New("cart missing")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "plain error has no kind", err: errors.New("boom"), want: nil},
		{name: "marked not found", err: errs.Mark(errCartMissing, errs.ErrNotFound), want: errs.ErrNotFound},
		{name: "wrapped mark survives", err: errs.Wrap(errs.Mark(errCartMissing, errs.ErrInvalidInput), "add item"), want: errs.ErrInvalidInput},
		{name: "fatal wins over not found", err: errs.Mark(errs.Mark(errCartMissing, errs.ErrNotFound), errs.ErrFatal), want: errs.ErrFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Kind(tt.err))
		})
	}
}

func TestMarkKeepsOriginalIdentity(t *testing.T) {
	errSpecific := errs.New("specific")
	err := errs.Mark(errSpecific, errs.ErrConflict)

	assert.True(t, errs.Is(err, errSpecific))
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.False(t, errs.Is(err, errs.ErrNotFound))
	assert.Equal(t, "specific", err.Error())
}

func TestClassify(t *testing.T) {
	errCartMissing := errs.New("cart missing")
	errProductMissing := errs.New("product missing")

	err := errs.Classify(nil, errCartMissing, errs.ErrNotFound)

	assert.ErrorIs(t, err, errCartMissing)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
	assert.False(t, errs.Is(err, errProductMissing))
	assert.Equal(t, errs.ErrNotFound, errs.Kind(err))

	cause := errors.New("connection reset")
	wrapped := errs.Classify(cause, errCartMissing, errs.ErrNotFound)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, errs.Is(wrapped, errCartMissing))
}

func TestMarkNilReturnsMarker(t *testing.T) {
	assert.Equal(t, errs.ErrNotFound, errs.Mark(nil, errs.ErrNotFound))
	assert.Nil(t, errs.Wrap(nil, "ignored"))
}
