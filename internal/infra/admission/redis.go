package admission

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"shop-backend/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Only the holder of the token may free the slot.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const (
	minPoll = 10 * time.Millisecond
	maxPoll = 200 * time.Millisecond
)

// RedisGate serializes requests across every instance sharing the Redis.
// Slots are leased so a crashed holder frees its cart after lease.
type RedisGate struct {
	client  redis.UniversalClient
	timeout time.Duration
	lease   time.Duration
	logger  *slog.Logger
}

func NewRedisGate(client redis.UniversalClient, timeout time.Duration, logger *slog.Logger) *RedisGate {
	return &RedisGate{
		client:  client,
		timeout: timeout,
		lease:   30 * time.Second,
		logger:  logger,
	}
}

func (g *RedisGate) Acquire(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	slotKey := "admission:" + key

	deadline := time.NewTimer(g.timeout)
	defer deadline.Stop()

	wait := minPoll
	for {
		ok, err := g.client.SetNX(ctx, slotKey, token, g.lease).Result()
		if err != nil {
			return nil, errs.Wrap(err, "admission slot acquire failed")
		}
		if ok {
			return g.releaser(slotKey, token), nil
		}

		select {
		case <-deadline.C:
			return nil, ErrAdmissionTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, maxPoll)
	}
}

func (g *RedisGate) releaser(slotKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled; release on a fresh one.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, g.client, []string{slotKey}, token).Err(); err != nil {
				g.logger.Warn("admission slot release failed", "key", slotKey, "error", err.Error())
			}
		})
	}
}

func newToken() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errs.Wrap(err, "admission token")
	}
	return hex.EncodeToString(buf[:]), nil
}
