// Package admission limits every cart to one in-flight mutation.
package admission

import (
	"context"
	"sync"
	"time"

	"shop-backend/internal/pkg/errs"
)

var ErrAdmissionTimeout = errs.New("another request for this cart is still in progress")

// Gate hands out a single slot per key. The returned release func must be
// called exactly once.
type Gate interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

type slot struct {
	ch   chan struct{}
	refs int
}

// LocalGate serializes requests inside one process.
type LocalGate struct {
	mu      sync.Mutex
	slots   map[string]*slot
	timeout time.Duration
}

func NewLocalGate(timeout time.Duration) *LocalGate {
	return &LocalGate{
		slots:   make(map[string]*slot),
		timeout: timeout,
	}
}

func (g *LocalGate) Acquire(ctx context.Context, key string) (func(), error) {
	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		g.slots[key] = s
	}
	s.refs++
	g.mu.Unlock()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				g.unref(key, s)
			})
		}, nil
	case <-timer.C:
		g.unref(key, s)
		return nil, ErrAdmissionTimeout
	case <-ctx.Done():
		g.unref(key, s)
		return nil, ctx.Err()
	}
}

func (g *LocalGate) unref(key string, s *slot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(g.slots, key)
	}
}
