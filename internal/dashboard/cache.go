package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freightdesk/freightdesk/internal/shared"
)

const cacheKey = "dashboard:metrics"

// Cache keeps the last Metrics in Redis for a short TTL. A nil Cache is a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns cached metrics when present and decodable.
func (c *Cache) Get(ctx context.Context) (Metrics, bool) {
	if c == nil || c.client == nil {
		return Metrics{}, false
	}
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return Metrics{}, false
	}
	var m Metrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return Metrics{}, false
	}
	return m, true
}

// Set stores metrics; failures only cost a recomputation.
func (c *Cache) Set(ctx context.Context, m Metrics) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey, raw, c.ttl).Err()
}

// Invalidate drops the cached metrics after a mutation.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, cacheKey).Err()
}

// Wrap returns a recorder that drops the cached metrics whenever an audit
// entry is written, which every create, update and delete does.
func (c *Cache) Wrap(rec shared.AuditRecorder) shared.AuditRecorder {
	return invalidatingRecorder{AuditRecorder: rec, cache: c}
}

type invalidatingRecorder struct {
	shared.AuditRecorder
	cache *Cache
}

func (r invalidatingRecorder) Record(ctx context.Context, log shared.AuditLog) error {
	r.cache.Invalidate(ctx)
	return r.AuditRecorder.Record(ctx, log)
}
