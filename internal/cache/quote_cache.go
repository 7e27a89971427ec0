package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/domain"
)

const keyPrefix = "quote:"

// QuoteCache stores finished quotes by request fingerprint
type QuoteCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.QuoteResult, bool, error)
	Set(ctx context.Context, fingerprint string, quote *domain.QuoteResult) error
}

// NopQuoteCache never hits
type NopQuoteCache struct{}

func (NopQuoteCache) Get(ctx context.Context, fingerprint string) (*domain.QuoteResult, bool, error) {
	return nil, false, nil
}

func (NopQuoteCache) Set(ctx context.Context, fingerprint string, quote *domain.QuoteResult) error {
	return nil
}

type redisQuoteCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisQuoteCache creates a quote cache backed by redis
func NewRedisQuoteCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *redisQuoteCache {
	return &redisQuoteCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// NewRedisClient opens a redis client and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *redisQuoteCache) Get(ctx context.Context, fingerprint string) (*domain.QuoteResult, bool, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+fingerprint).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Warn("Failed to read cached quote", zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false, err
	}

	var quote domain.QuoteResult
	if err := json.Unmarshal(val, &quote); err != nil {
		c.logger.Warn("Dropping unreadable cached quote", zap.String("fingerprint", fingerprint), zap.Error(err))
		c.rdb.Del(ctx, keyPrefix+fingerprint)
		return nil, false, nil
	}
	return &quote, true, nil
}

func (c *redisQuoteCache) Set(ctx context.Context, fingerprint string, quote *domain.QuoteResult) error {
	payload, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, keyPrefix+fingerprint, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache quote", zap.String("fingerprint", fingerprint), zap.Error(err))
		return err
	}
	return nil
}
