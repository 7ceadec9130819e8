package converter

import (
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/pkg/pgconv"
)

func ProductFromRow(r query.Product) *inventory.Product {
	return inventory.ReconstructProduct(
		r.ID, r.Name, r.Description, inventory.Money(r.Price), r.Images,
		int(r.Stock), int(r.TempStock), r.CreatedAt,
	)
}

func ProductToCreateParams(p *inventory.Product) query.CreateProductParams {
	images := p.Images()
	if images == nil {
		images = []string{}
	}
	return query.CreateProductParams{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       int64(p.Price()),
		Images:      images,
		Stock:       int32(p.Stock()),     // #nosec G115 -- bounded by the INTEGER column
		TempStock:   int32(p.TempStock()), // #nosec G115
	}
}

func ShippingMethodFromRow(r query.ShippingMethod) *inventory.ShippingMethod {
	var freeAbove *inventory.Money
	if v := pgconv.Int64PtrFromPgtype(r.FreeAbove); v != nil {
		m := inventory.Money(*v)
		freeAbove = &m
	}

	var window *inventory.DeliveryWindow
	from, to := pgconv.TimePtrFromPgtype(r.DeliveryFrom), pgconv.TimePtrFromPgtype(r.DeliveryTo)
	if from != nil && to != nil {
		window = &inventory.DeliveryWindow{From: *from, To: *to}
	}

	return inventory.ReconstructShippingMethod(r.ID, inventory.ShippingMethodParams{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Price:       inventory.Money(r.Price),
		FreeAbove:   freeAbove,
		Window:      window,
		Stock:       int(r.Stock),
	}, int(r.TempStock), r.CreatedAt)
}

func ShippingMethodToCreateParams(m *inventory.ShippingMethod) query.CreateShippingMethodParams {
	var freeAbove *int64
	if m.FreeAbove() != nil {
		v := int64(*m.FreeAbove())
		freeAbove = &v
	}

	params := query.CreateShippingMethodParams{
		ID:          m.ID(),
		Name:        m.Name(),
		Description: m.Description(),
		Type:        m.Type().String(),
		Price:       int64(m.Price()),
		FreeAbove:   pgconv.Int64PtrToPgtype(freeAbove),
		Stock:       int32(m.Stock()),     // #nosec G115
		TempStock:   int32(m.TempStock()), // #nosec G115
	}
	if w := m.Window(); w != nil {
		params.DeliveryFrom = pgconv.TimePtrToPgtype(&w.From)
		params.DeliveryTo = pgconv.TimePtrToPgtype(&w.To)
	}
	return params
}
