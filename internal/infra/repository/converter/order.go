package converter

import (
	"encoding/json"

	"shop-backend/internal/domain/order"
	"shop-backend/internal/infra/query"
	"shop-backend/internal/pkg/errs"
)

func OrderFromRow(r query.Order) (*order.Order, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	var snapshot order.Snapshot
	if err := json.Unmarshal(r.Snapshot, &snapshot); err != nil {
		return nil, errs.Wrap(err, "decode order snapshot")
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	var payment order.PaymentProcess
	if err := json.Unmarshal(r.PaymentProcess, &payment); err != nil {
		return nil, errs.Wrap(err, "decode payment process")
	}

	var txn *order.Transaction
	if len(r.Transaction) > 0 {
		txn = &order.Transaction{}
		if err := json.Unmarshal(r.Transaction, txn); err != nil {
			return nil, errs.Wrap(err, "decode transaction")
		}
	}

	return order.Reconstruct(r.ID, r.CartID, status, snapshot, payment, txn, r.CreatedAt, r.UpdatedAt), nil
}

func OrderToCreateParams(o *order.Order) (query.CreateOrderParams, error) {
	snapshot, err := json.Marshal(o.Snapshot())
	if err != nil {
		return query.CreateOrderParams{}, errs.Wrap(err, "encode order snapshot")
	}
	payment, err := json.Marshal(o.Payment())
	if err != nil {
		return query.CreateOrderParams{}, errs.Wrap(err, "encode payment process")
	}
	return query.CreateOrderParams{
		ID:             o.ID(),
		CartID:         o.CartID(),
		Status:         o.Status().String(),
		Snapshot:       snapshot,
		PaymentProcess: payment,
		CreatedAt:      o.CreatedAt(),
	}, nil
}

func OrderToStatusParams(o *order.Order) (query.UpdateOrderStatusParams, error) {
	params := query.UpdateOrderStatusParams{
		ID:        o.ID(),
		Status:    o.Status().String(),
		UpdatedAt: o.UpdatedAt(),
	}
	if txn := o.Transaction(); txn != nil {
		raw, err := json.Marshal(txn)
		if err != nil {
			return query.UpdateOrderStatusParams{}, errs.Wrap(err, "encode transaction")
		}
		params.Transaction = raw
	}
	return params, nil
}
