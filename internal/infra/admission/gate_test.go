//go:build unit

package admission

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gates(t *testing.T, timeout time.Duration) map[string]Gate {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Gate{
		"local": NewLocalGate(timeout),
		"redis": NewRedisGate(client, timeout, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func TestGateSerializesSameKey(t *testing.T) {
	for name, gate := range gates(t, 2*time.Second) {
		t.Run(name, func(t *testing.T) {
			var inFlight, maxInFlight atomic.Int32
			var wg sync.WaitGroup

			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					release, err := gate.Acquire(context.Background(), "cart-0001")
					if !assert.NoError(t, err) {
						return
					}
					n := inFlight.Add(1)
					for {
						m := maxInFlight.Load()
						if n <= m || maxInFlight.CompareAndSwap(m, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					inFlight.Add(-1)
					release()
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), maxInFlight.Load())
		})
	}
}

func TestGateTimesOut(t *testing.T) {
	for name, gate := range gates(t, 50*time.Millisecond) {
		t.Run(name, func(t *testing.T) {
			release, err := gate.Acquire(context.Background(), "cart-0002")
			require.NoError(t, err)
			defer release()

			_, err = gate.Acquire(context.Background(), "cart-0002")
			assert.ErrorIs(t, err, ErrAdmissionTimeout)
		})
	}
}

func TestGateKeysAreIndependent(t *testing.T) {
	for name, gate := range gates(t, 50*time.Millisecond) {
		t.Run(name, func(t *testing.T) {
			releaseA, err := gate.Acquire(context.Background(), "cart-000a")
			require.NoError(t, err)
			defer releaseA()

			releaseB, err := gate.Acquire(context.Background(), "cart-000b")
			require.NoError(t, err)
			releaseB()
		})
	}
}

func TestGateReleaseIsIdempotent(t *testing.T) {
	for name, gate := range gates(t, 50*time.Millisecond) {
		t.Run(name, func(t *testing.T) {
			release, err := gate.Acquire(context.Background(), "cart-0003")
			require.NoError(t, err)
			release()
			release()

			again, err := gate.Acquire(context.Background(), "cart-0003")
			require.NoError(t, err)
			again()
		})
	}
}

func TestLocalGateForgetsIdleKeys(t *testing.T) {
	g := NewLocalGate(time.Second)
	release, err := g.Acquire(context.Background(), "cart-0004")
	require.NoError(t, err)
	release()

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Empty(t, g.slots)
}
