package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/domain"
)

const (
	quoteKeyPrefix     = "quote:project"
	quoteScanBatchSize = 100
	defaultQuoteTTL    = 5 * time.Minute
)

// QuoteCache stores computed project results keyed by the request and the catalog
// snapshot it was priced against.
type QuoteCache interface {
	GetProject(ctx context.Context, key string) (domain.ProjectResult, bool, error)
	SetProject(ctx context.Context, key string, result domain.ProjectResult) error
	InvalidateAll(ctx context.Context) error
}

type redisQuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopQuoteCache struct{}

func NewQuoteCache(cfg config.CacheConfig) (QuoteCache, error) {
	if !cfg.Enabled {
		return &noopQuoteCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisQuoteCache(client, time.Duration(cfg.QuoteTTLSeconds)*time.Second), nil
}

// redisOptions prefers REDIS_URL and otherwise builds the address from host and port.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func NewNoopQuoteCache() QuoteCache {
	return &noopQuoteCache{}
}

// NewRedisQuoteCache wraps an existing client.
func NewRedisQuoteCache(client *redis.Client, ttl time.Duration) QuoteCache {
	if ttl <= 0 {
		ttl = defaultQuoteTTL
	}
	return &redisQuoteCache{client: client, ttl: ttl}
}

func (c *redisQuoteCache) GetProject(ctx context.Context, key string) (domain.ProjectResult, bool, error) {
	payload, err := c.client.Get(ctx, quoteKeyPrefix+":"+key).Bytes()
	if err == redis.Nil {
		return domain.ProjectResult{}, false, nil
	}
	if err != nil {
		return domain.ProjectResult{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.ProjectResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.ProjectResult{}, false, fmt.Errorf("decode quote cache: %w", err)
	}
	return result, true, nil
}

func (c *redisQuoteCache) SetProject(ctx context.Context, key string, result domain.ProjectResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode quote cache: %w", err)
	}

	if err := c.client.Set(ctx, quoteKeyPrefix+":"+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll unlinks every cached project result, one scan batch at a time.
func (c *redisQuoteCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, quoteKeyPrefix+":*", quoteScanBatchSize).Iterator()
	batch := make([]string, 0, quoteScanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == quoteScanBatchSize {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis unlink failed: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis unlink failed: %w", err)
		}
	}
	return nil
}

func (n *noopQuoteCache) GetProject(ctx context.Context, key string) (domain.ProjectResult, bool, error) {
	return domain.ProjectResult{}, false, nil
}

func (n *noopQuoteCache) SetProject(ctx context.Context, key string, result domain.ProjectResult) error {
	return nil
}

func (n *noopQuoteCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// Key hashes the parts (request, catalog, ledger) into a stable cache key. Any change
// to the catalog or stock produces a different key.
func Key(parts ...any) (string, error) {
	h := sha1.New()
	for _, part := range parts {
		payload, err := json.Marshal(part)
		if err != nil {
			return "", fmt.Errorf("encode cache key part: %w", err)
		}
		h.Write(payload)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
