package cache

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Stores the cart only if no Delete has advanced the generation since the
// caller's Get.
var fillScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if (gen or "0") ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// RedisCache keeps each cart as JSON next to a generation counter. Both keys
// share a hash tag so they live in one cluster slot.
type RedisCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
	genTTL  time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: ttl,
		genTTL:  2*ttl + time.Minute,
	}
}

type cachedItem struct {
	ProductID uuid.UUID `json:"productId"`
	Amount    int       `json:"amount"`
}

type cachedCart struct {
	ID               string                `json:"id"`
	Items            []cachedItem          `json:"items"`
	ShippingMethodID *uuid.UUID            `json:"shippingMethodId,omitempty"`
	Customer         *cart.CustomerDetails `json:"customer,omitempty"`
	OrderID          *uuid.UUID            `json:"orderId,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	ExpiresAt        time.Time             `json:"expiresAt"`
}

func (r *RedisCache) Get(ctx context.Context, id cart.ID) (*cart.Cart, int64, error) {
	vals, err := r.client.MGet(ctx, dataKey(id), generationKey(id)).Result()
	if err != nil {
		return nil, 0, errs.Wrap(err, "redis get failed")
	}

	var generation int64
	if raw, ok := vals[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, errs.Wrap(err, "parse cart generation failed")
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, generation, queries.ErrCacheMiss
	}

	var cc cachedCart
	if err := json.Unmarshal([]byte(raw), &cc); err != nil {
		return nil, 0, errs.Wrap(err, "unmarshal cart failed")
	}

	items := make([]cart.LineItem, 0, len(cc.Items))
	for _, it := range cc.Items {
		items = append(items, cart.LineItem{ProductID: it.ProductID, Amount: it.Amount})
	}
	c := cart.Reconstruct(cart.ID(cc.ID), items, cc.ShippingMethodID, cc.Customer, cc.OrderID, cc.CreatedAt, cc.ExpiresAt)
	return c, generation, nil
}

// Fill stores the cart no longer than it has left to live, unless the
// generation moved on since it was read.
func (r *RedisCache) Fill(ctx context.Context, c *cart.Cart, generation int64) error {
	cc := cachedCart{
		ID:               c.ID().String(),
		Items:            make([]cachedItem, 0, len(c.Items())),
		ShippingMethodID: c.ShippingMethodID(),
		Customer:         c.Customer(),
		OrderID:          c.OrderID(),
		CreatedAt:        c.CreatedAt(),
		ExpiresAt:        c.ExpiresAt(),
	}
	for _, it := range c.Items() {
		cc.Items = append(cc.Items, cachedItem{ProductID: it.ProductID, Amount: it.Amount})
	}

	data, err := json.Marshal(cc)
	if err != nil {
		return errs.Wrap(err, "marshal cart failed")
	}

	ttl := r.baseTTL + time.Duration(rand.Int64N(int64(time.Second*30))) // #nosec G404 -- jitter only
	if left := time.Until(c.ExpiresAt()); left < ttl {
		ttl = left
	}
	if ttl < time.Millisecond {
		return nil
	}

	keys := []string{dataKey(c.ID()), generationKey(c.ID())}
	err = fillScript.Run(ctx, r.client, keys, strconv.FormatInt(generation, 10), data, ttl.Milliseconds()).Err()
	if err != nil {
		return errs.Wrap(err, "redis fill failed")
	}
	return nil
}

// Delete drops the cached cart and advances its generation, which voids any
// Fill still carrying an older one.
func (r *RedisCache) Delete(ctx context.Context, id cart.ID) error {
	genKey := generationKey(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.PExpire(ctx, genKey, r.genTTL)
		pipe.Del(ctx, dataKey(id))
		return nil
	})
	if err != nil {
		return errs.Wrap(err, "redis delete failed")
	}
	return nil
}

func dataKey(id cart.ID) string {
	return "cart:{" + id.String() + "}"
}

func generationKey(id cart.ID) string {
	return "cart:{" + id.String() + "}:gen"
}

// NopCache always misses. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, cart.ID) (*cart.Cart, int64, error) {
	return nil, 0, queries.ErrCacheMiss
}
func (NopCache) Fill(context.Context, *cart.Cart, int64) error { return nil }
func (NopCache) Delete(context.Context, cart.ID) error         { return nil }
