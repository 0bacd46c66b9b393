package cache

import (
	"campaign-route-service/internal/adapters/codec"
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/platform/obs"
	"campaign-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "itinerary:"

// RedisItineraryCache keeps solved itineraries in Redis under
// "itinerary:<key>" for TTL.
type RedisItineraryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisItineraryCache(addr string, ttl time.Duration) *RedisItineraryCache {
	return &RedisItineraryCache{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
	}
}

// Ping checks that the server is reachable.
func (c *RedisItineraryCache) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis itinerary cache: ping: %w", err)
	}
	return nil
}

func (c *RedisItineraryCache) Close() error {
	return c.Client.Close()
}

func (c *RedisItineraryCache) Get(ctx context.Context, key string) (_ *domain.ItineraryRecord, err error) {
	defer obs.Time(ctx, "itinerary.cache.Get")(&err)

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get itinerary cache: key must not be empty")
	}

	b, err := c.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, err)
	}

	rec, err := codec.DecodeRecord(b)
	if err != nil {
		return nil, fmt.Errorf("get itinerary cache key=%s: %w", key, err)
	}
	return rec, nil
}

func (c *RedisItineraryCache) Put(ctx context.Context, key string, rec *domain.ItineraryRecord) (err error) {
	defer obs.Time(ctx, "itinerary.cache.Put")(&err)

	if strings.TrimSpace(key) == "" {
		return errors.New("put itinerary cache: key must not be empty")
	}

	b, err := codec.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("put itinerary cache key=%s: %w", key, err)
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put itinerary cache key=%s: %w", key, err)
	}
	return nil
}
