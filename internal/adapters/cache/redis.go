package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// Connect initializes a Redis client from URL or host:port input.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisRateCache keeps the latest rate snapshot per scope in a Redis hash
// under payoutRates:<scope>.
type RedisRateCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisRateCache creates the cache; ttl <= 0 keeps entries until overwritten.
func NewRedisRateCache(client redis.Cmdable, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{client: client, ttl: ttl}
}

func (c *RedisRateCache) Get(ctx context.Context, scope string) (*ports.RateSnapshot, error) {
	data, err := c.client.HGetAll(ctx, rateKey(scope)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	articleRate, err := strconv.ParseFloat(data["article_rate"], 64)
	if err != nil {
		return nil, nil
	}
	blogRate, err := strconv.ParseFloat(data["blog_rate"], 64)
	if err != nil {
		return nil, nil
	}
	snapshot := &ports.RateSnapshot{
		Scope:     scope,
		Rates:     domain.RateTable{ArticleRate: articleRate, BlogRate: blogRate},
		UpdatedBy: data["updated_by"],
	}
	if raw := data["updated_at"]; raw != "" {
		if nanos, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			snapshot.UpdatedAt = time.Unix(0, nanos).UTC()
		}
	}
	return snapshot, nil
}

func (c *RedisRateCache) Set(ctx context.Context, snapshot ports.RateSnapshot) error {
	key := rateKey(snapshot.Scope)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"article_rate", strconv.FormatFloat(snapshot.Rates.ArticleRate, 'g', -1, 64),
			"blog_rate", strconv.FormatFloat(snapshot.Rates.BlogRate, 'g', -1, 64),
			"updated_by", snapshot.UpdatedBy,
			"updated_at", strconv.FormatInt(snapshot.UpdatedAt.UnixNano(), 10),
		)
		if c.ttl > 0 {
			p.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	return err
}

func (c *RedisRateCache) Delete(ctx context.Context, scope string) error {
	return c.client.Del(ctx, rateKey(scope)).Err()
}

func rateKey(scope string) string {
	return domain.RatesStorageKey + ":" + scope
}
