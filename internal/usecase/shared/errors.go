package shared

import "shop-backend/internal/pkg/errs"

// Lookup failures shared by commands and queries. Each is returned marked
// with errs.ErrNotFound.
var (
	ErrCartNotFound           = errs.New("cart not found")
	ErrProductNotFound        = errs.New("product not found")
	ErrShippingMethodNotFound = errs.New("shipping method not found")
	ErrOrderNotFound          = errs.New("order not found")
)

// NotFound re-labels a store not-found error with a specific sentinel and
// passes every other error through.
func NotFound(err, specific error) error {
	if errs.Is(err, errs.ErrNotFound) {
		return errs.Classify(err, specific, errs.ErrNotFound)
	}
	return err
}
