package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

const (
	profileGenerationKey = "meapi:profile:gen"
	profileAggregateKey  = "meapi:profile:aggregate:%d"
)

// RedisProfileCache stores the assembled profile aggregate as one JSON value
// per generation. Invalidate bumps the generation, so a value built from
// rows read before the bump lands under a key no reader asks for again.
type RedisProfileCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisProfileCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisProfileCache {
	return &RedisProfileCache{rdb: rdb, ttl: ttl, logger: log}
}

func aggregateKey(gen int64) string {
	return fmt.Sprintf(profileAggregateKey, gen)
}

func (c *RedisProfileCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, profileGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, apperror.NewInternal("failed to read profile cache generation", err)
	}
	return gen, nil
}

func (c *RedisProfileCache) Get(ctx context.Context, gen int64) (*profile.Aggregate, bool, error) {
	raw, err := c.rdb.Get(ctx, aggregateKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperror.NewInternal("failed to read cached profile", err)
	}

	var agg profile.Aggregate
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, false, apperror.NewInternal("failed to decode cached profile", err)
	}
	return &agg, true, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, gen int64, agg *profile.Aggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return apperror.NewInternal("failed to encode profile for cache", err)
	}
	if err := c.rdb.Set(ctx, aggregateKey(gen), raw, c.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to cache profile", err)
	}
	return nil
}

// Invalidate advances the generation and drops the value it replaces. Older
// generations expire on their TTL.
func (c *RedisProfileCache) Invalidate(ctx context.Context) error {
	gen, err := c.rdb.Incr(ctx, profileGenerationKey).Result()
	if err != nil {
		return apperror.NewInternal("failed to invalidate cached profile", err)
	}
	if err := c.rdb.Del(ctx, aggregateKey(gen-1)).Err(); err != nil {
		c.logger.Warn("Failed to drop previous profile cache entry", zap.Int64("generation", gen-1), zap.Error(err))
	}
	return nil
}
