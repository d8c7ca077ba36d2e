package building

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"unitbridge/internal/registry/models"
	"unitbridge/pkg/platform/circuit"
	txcontext "unitbridge/pkg/platform/tx"
)

const buildingKeyPrefix = "ub:building:"

// DefaultCacheTTL bounds how long a cached building bridge is served.
const DefaultCacheTTL = 10 * time.Minute

// Store is the building persistence contract shared by the backends.
type Store interface {
	Create(ctx context.Context, b *models.Building) error
	FindByLegacyID(ctx context.Context, legacyBuildingID int64) (*models.Building, error)
	ListByAdmin(ctx context.Context, legacyAdminID int64) ([]*models.Building, error)
}

// RedisCache is a read-through cache in front of a building Store.
// Building bridges never change after creation, so entries are only ever
// written, never invalidated. Reads inside a transaction go straight to the
// underlying store so they observe the transaction's own writes. While Redis
// keeps failing the breaker is open and reads skip it entirely.
type RedisCache struct {
	next    Store
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	breaker *circuit.Breaker
}

// RedisCacheOption configures a RedisCache instance.
type RedisCacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithCacheBreaker(b *circuit.Breaker) RedisCacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

// NewRedisCache wraps next with a Redis read-through cache.
func NewRedisCache(next Store, client *redis.Client, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		next:    next,
		client:  client,
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
		breaker: circuit.New("building-cache", circuit.WithFailureThreshold(3)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func cacheKey(legacyBuildingID int64) string {
	return buildingKeyPrefix + strconv.FormatInt(legacyBuildingID, 10)
}

// Create writes through to the underlying store. The cache is populated on
// the next read, after the row is committed.
func (c *RedisCache) Create(ctx context.Context, b *models.Building) error {
	return c.next.Create(ctx, b)
}

// FindByLegacyID serves from Redis when possible. Cache failures degrade to
// the underlying store and are only logged.
func (c *RedisCache) FindByLegacyID(ctx context.Context, legacyBuildingID int64) (*models.Building, error) {
	if txcontext.InTx(ctx) || !c.breaker.Allow() {
		return c.next.FindByLegacyID(ctx, legacyBuildingID)
	}

	key := cacheKey(legacyBuildingID)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		c.recordSuccess(ctx)
		var b models.Building
		if jsonErr := json.Unmarshal(raw, &b); jsonErr == nil {
			return &b, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cached building", "legacy_building_id", legacyBuildingID)
	case errors.Is(err, redis.Nil):
		c.recordSuccess(ctx)
	default:
		c.recordFailure(ctx, err)
		c.logger.WarnContext(ctx, "building cache read failed", "legacy_building_id", legacyBuildingID, "error", err)
		return c.next.FindByLegacyID(ctx, legacyBuildingID)
	}

	b, err := c.next.FindByLegacyID(ctx, legacyBuildingID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(b); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.recordFailure(ctx, err)
			c.logger.WarnContext(ctx, "building cache write failed", "legacy_building_id", legacyBuildingID, "error", err)
		}
	}
	return b, nil
}

func (c *RedisCache) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "building cache recovered", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) recordFailure(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "building cache disabled after repeated failures",
			"breaker", c.breaker.Name(),
			"error", err,
		)
	}
}

func (c *RedisCache) ListByAdmin(ctx context.Context, legacyAdminID int64) ([]*models.Building, error) {
	return c.next.ListByAdmin(ctx, legacyAdminID)
}
