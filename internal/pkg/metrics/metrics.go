package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shop"

// Operation results recorded by the cart engine.
const (
	ResultOK                = "ok"
	ResultNotFound          = "not_found"
	ResultInsufficientStock = "insufficient_stock"
	ResultInvalid           = "invalid"
	ResultSkipped           = "skipped"
	ResultError             = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	CartOperations       *prometheus.CounterVec
	SweptCarts           prometheus.Counter
	SweepFailures        prometheus.Counter
	SweepDuration        prometheus.Histogram
	FatalApprovals       prometheus.Counter
	NotificationFailures prometheus.Counter
	PaymentRequests      *prometheus.CounterVec
	HTTPRequests         *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		CartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation and result.",
		}, []string{"operation", "result"}),
		SweptCarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_released_carts_total",
			Help:      "Expired carts whose reservations were released.",
		}),
		SweepFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_failures_total",
			Help:      "Expired carts the sweeper failed to release.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweeper_run_seconds",
			Help:      "Duration of a single sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
		FatalApprovals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_fatal_approvals_total",
			Help:      "Paid orders whose stock finalization failed and need manual repair.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notification_failures_total",
			Help:      "Order notifications that could not be sent.",
		}),
		PaymentRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_gateway_requests_total",
			Help:      "Payment gateway calls by endpoint and result.",
		}, []string{"endpoint", "result"}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.CartOperations,
		m.SweptCarts,
		m.SweepFailures,
		m.SweepDuration,
		m.FatalApprovals,
		m.NotificationFailures,
		m.PaymentRequests,
		m.HTTPRequests,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
