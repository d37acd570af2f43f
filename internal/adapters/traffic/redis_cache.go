package traffic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisCache decorates a TrafficReader with a short-TTL Redis cache on
// latest-sample lookups. The scorer hits those on every analysis request,
// while samples only change on ingestion.
//
// Cache failures degrade to the inner reader; they never fail a request.
type RedisCache struct {
	inner  ports.TrafficReader
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(inner ports.TrafficReader, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{inner: inner, client: client, ttl: ttl}
}

func cacheKey(segment string) string { return "traffic:latest:" + segment }

func (c *RedisCache) LatestSample(ctx context.Context, segment string) (domain.TrafficSample, bool, error) {
	if sample, ok := c.cached(ctx, segment); ok {
		return sample, true, nil
	}

	sample, ok, err := c.inner.LatestSample(ctx, segment)
	if err != nil || !ok {
		return sample, ok, err
	}
	c.store(ctx, sample)
	return sample, true, nil
}

func (c *RedisCache) LatestSamples(ctx context.Context, segments []string) (map[string]domain.TrafficSample, error) {
	out := make(map[string]domain.TrafficSample, len(segments))
	missing := []string{}

	for _, segment := range segments {
		if sample, ok := c.cached(ctx, segment); ok {
			out[segment] = sample
			continue
		}
		missing = append(missing, segment)
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.inner.LatestSamples(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("traffic cache: fetch missing segments: %w", err)
	}
	for segment, sample := range fetched {
		out[segment] = sample
		c.store(ctx, sample)
	}
	return out, nil
}

// History is not cached; it serves dashboards, not the scoring hot path.
func (c *RedisCache) History(ctx context.Context, segment string, limit int) ([]domain.TrafficSample, error) {
	return c.inner.History(ctx, segment, limit)
}

// Invalidate drops the cached entry for a segment. Called after ingestion so
// readers converge on the new sample before the TTL expires.
func (c *RedisCache) Invalidate(ctx context.Context, segment string) {
	_ = c.client.Del(ctx, cacheKey(segment)).Err()
}

func (c *RedisCache) cached(ctx context.Context, segment string) (domain.TrafficSample, bool) {
	payload, err := c.client.Get(ctx, cacheKey(segment)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return domain.TrafficSample{}, false
		}
		return domain.TrafficSample{}, false
	}

	var sample domain.TrafficSample
	if err := json.Unmarshal(payload, &sample); err != nil {
		return domain.TrafficSample{}, false
	}
	return sample, true
}

func (c *RedisCache) store(ctx context.Context, sample domain.TrafficSample) {
	payload, err := json.Marshal(sample)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(sample.Segment), payload, c.ttl).Err()
}

var _ ports.TrafficReader = (*RedisCache)(nil)
