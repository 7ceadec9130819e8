//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"shop-backend/internal/domain/order"

	"github.com/google/uuid"
)

// PaymentStub plays the payment provider: it opens numbered payment
// processes and approves every transaction unless told to fail.
type PaymentStub struct {
	srv *httptest.Server

	mu        sync.Mutex
	nextID    int
	creates   []url.Values
	approvals []url.Values
	failNext  bool
}

func NewPaymentStub(t *testing.T) *PaymentStub {
	t.Helper()
	p := &PaymentStub{nextID: 1000}
	p.srv = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *PaymentStub) BaseURL() string {
	return p.srv.URL + "/api/light/server/1.0"
}

func (p *PaymentStub) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failNext {
		p.failNext = false
		_, _ = io.WriteString(w, `{"status":0,"err":{"id":500,"message":"provider unavailable"}}`)
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/createPaymentProcess"):
		p.creates = append(p.creates, r.PostForm)
		p.nextID++
		_, _ = fmt.Fprintf(w, `{"status":1,"data":{"processId":%d,"url":"https://pay.example/p/%d"}}`, p.nextID, p.nextID)
	case strings.HasSuffix(r.URL.Path, "/approveTransaction"):
		p.approvals = append(p.approvals, r.PostForm)
		_, _ = io.WriteString(w, `{"status":1,"data":{}}`)
	default:
		http.NotFound(w, r)
	}
}

func (p *PaymentStub) FailNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = true
}

func (p *PaymentStub) Creates() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.creates...)
}

func (p *PaymentStub) Approvals() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.approvals...)
}

func (p *PaymentStub) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.creates = nil
	p.approvals = nil
	p.failNext = false
}

// RecordingNotifier keeps the ids of approved orders it was told about.
type RecordingNotifier struct {
	mu       sync.Mutex
	approved []uuid.UUID
}

func (n *RecordingNotifier) OrderApproved(_ context.Context, o *order.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, o.ID())
	return nil
}

func (n *RecordingNotifier) Approved() []uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uuid.UUID(nil), n.approved...)
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = nil
}
