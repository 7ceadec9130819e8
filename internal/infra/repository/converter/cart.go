package converter

import (
	"encoding/json"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/pgconv"
)

func CartFromRows(r query.Cart, items []query.CartItem) (*cart.Cart, error) {
	lines := make([]cart.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, cart.LineItem{ProductID: it.ProductID, Amount: int(it.Amount)})
	}

	var customer *cart.CustomerDetails
	if len(r.CustomerDetails) > 0 {
		customer = &cart.CustomerDetails{}
		if err := json.Unmarshal(r.CustomerDetails, customer); err != nil {
			return nil, errs.Wrap(err, "decode customer details")
		}
	}

	return cart.Reconstruct(
		cart.ID(r.ID),
		lines,
		pgconv.UUIDPtrFromPgtype(r.ShippingMethodID),
		customer,
		pgconv.UUIDPtrFromPgtype(r.OrderID),
		r.CreatedAt,
		r.ExpiresAt,
	), nil
}

func CustomerToJSON(details *cart.CustomerDetails) ([]byte, error) {
	if details == nil {
		return nil, nil
	}
	return json.Marshal(details)
}
