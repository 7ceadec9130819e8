package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
)

const (
	createProcessPath      = "/createPaymentProcess"
	approveTransactionPath = "/approveTransaction"

	statusOK = 1
)

var (
	ErrGatewayRejected = errs.New("payment gateway rejected the request")
	ErrGatewayResponse = errs.New("payment gateway returned an unreadable response")
	ErrGatewayOpen     = errs.New("payment gateway circuit is open")
)

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Err    *gatewayError   `json:"err"`
}

type gatewayError struct {
	ID      json.Number `json:"id"`
	Message string      `json:"message"`
}

type processData struct {
	ProcessID json.Number `json:"processId"`
	URL       string      `json:"url"`
}

// Gateway talks to the hosted payment page provider over form-encoded POSTs.
// Every call goes through one circuit breaker so an outage fails fast.
type Gateway struct {
	cfg     config.PaymentConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*envelope]
	logger  *slog.Logger
}

func NewGateway(cfg config.PaymentConfig, client *http.Client, logger *slog.Logger) *Gateway {
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*envelope](gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A business rejection means the provider is up. A caller that went
		// away says nothing about the provider either.
		IsSuccessful: func(err error) bool {
			return err == nil || errs.Is(err, ErrGatewayRejected) || errs.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Gateway{
		cfg:     cfg,
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

func (g *Gateway) CreatePaymentProcess(ctx context.Context, snapshot order.Snapshot) (order.PaymentProcess, error) {
	env, err := g.post(ctx, createProcessPath, g.processForm(snapshot))
	if err != nil {
		return order.PaymentProcess{}, errs.Wrapf(err, "create payment process for cart %s", snapshot.CartID)
	}

	var data processData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return order.PaymentProcess{}, errs.Mark(errs.Wrap(err, "decode payment process"), errs.ErrUpstreamFailure)
	}
	process := order.PaymentProcess{ProcessID: data.ProcessID.String(), URL: data.URL}
	if err := process.Validate(); err != nil {
		return order.PaymentProcess{}, errs.Classify(err, ErrGatewayResponse, errs.ErrUpstreamFailure)
	}
	return process, nil
}

func (g *Gateway) ApproveTransaction(ctx context.Context, txn order.Transaction) error {
	form := url.Values{}
	form.Set("pageCode", g.cfg.PageCode)
	form.Set("transactionId", txn.TransactionID)
	form.Set("processId", txn.ProcessID)
	form.Set("sum", txn.Sum.String())
	form.Set("paymentType", txn.PaymentType)
	form.Set("cardSuffix", txn.CardSuffix)
	form.Set("fullName", txn.PayerName)
	form.Set("payerEmail", txn.PayerEmail)

	if _, err := g.post(ctx, approveTransactionPath, form); err != nil {
		return errs.Wrapf(err, "approve transaction %s", txn.TransactionID)
	}
	return nil
}

func (g *Gateway) processForm(s order.Snapshot) url.Values {
	form := url.Values{}
	form.Set("pageCode", g.cfg.PageCode)
	form.Set("userId", g.cfg.UserID)
	form.Set("description", "Online order "+s.OrderID.String())
	form.Set("successUrl", g.cfg.SuccessURL)
	form.Set("cancelUrl", g.cfg.CancelURL)
	form.Set("pageField[fullName]", s.Customer.FullName)
	form.Set("pageField[phone]", s.Customer.Phone)
	form.Set("pageField[email]", s.Customer.Email)
	form.Set("cField1", s.OrderID.String())
	form.Set("cField2", s.CartID)
	form.Set("chargeType", "1")

	if s.Shipping.Type == inventory.ShippingDelivery {
		form.Set("cField3", s.Customer.Address)
		form.Set("cField4", strconv.Itoa(s.Customer.HouseNumber))
	}

	for i, it := range s.Items {
		prefix := "product_data[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[quantity]", strconv.Itoa(it.Amount))
		form.Set(prefix+"[price]", it.UnitPrice.String())
		form.Set(prefix+"[catalog_number]", it.ProductID.String())
		form.Set(prefix+"[item_description]", it.Name)
	}
	if s.Shipping.Charge > 0 {
		prefix := "product_data[" + strconv.Itoa(len(s.Items)) + "]"
		form.Set(prefix+"[quantity]", "1")
		form.Set(prefix+"[price]", s.Shipping.Charge.String())
		form.Set(prefix+"[catalog_number]", s.Shipping.ID.String())
		form.Set(prefix+"[item_description]", s.Shipping.Name)
	}

	form.Set("sum", s.Total.String())
	return form
}

func (g *Gateway) post(ctx context.Context, path string, form url.Values) (*envelope, error) {
	env, err := g.breaker.Execute(func() (*envelope, error) {
		return g.do(ctx, path, form)
	})
	switch {
	case err == nil:
		return env, nil
	case errs.Is(err, gobreaker.ErrOpenState), errs.Is(err, gobreaker.ErrTooManyRequests):
		return nil, errs.Classify(err, ErrGatewayOpen, errs.ErrUpstreamFailure)
	default:
		return nil, errs.Mark(err, errs.ErrUpstreamFailure)
	}
}

func (g *Gateway) do(ctx context.Context, path string, form url.Values) (*envelope, error) {
	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Wrap(err, "build payment request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "payment request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "read payment response")
	}

	g.logger.Debug("payment gateway call",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Newf("payment gateway returned HTTP %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode payment response"), ErrGatewayResponse)
	}
	if env.Status != statusOK {
		msg, id := "unknown error", ""
		if env.Err != nil {
			msg, id = env.Err.Message, env.Err.ID.String()
		}
		return nil, errs.Mark(errs.Newf("%s (%s)", msg, id), ErrGatewayRejected)
	}
	return &env, nil
}
