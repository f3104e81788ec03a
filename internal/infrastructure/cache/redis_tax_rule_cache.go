package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const taxRuleCacheKey = "pricing:tax_rules"

// RedisTaxRuleCache implements TaxRuleCache using Redis. Suitable for
// distributed deployments where rule changes must propagate to all
// instances within one TTL.
type RedisTaxRuleCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
}

// NewRedisTaxRuleCache creates a new Redis-based tax rule cache
func NewRedisTaxRuleCache(cfg config.RedisConfig, ttl time.Duration) (*RedisTaxRuleCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     taxRuleCacheAddr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTaxRuleCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
	}, nil
}

// NewRedisTaxRuleCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisTaxRuleCacheWithClient(client *redis.Client, ttl time.Duration) *RedisTaxRuleCache {
	return &RedisTaxRuleCache{
		client:     client,
		ownsClient: false,
		ttl:        ttl,
	}
}

// Get returns the cached rule set, reporting a miss on absent key
func (c *RedisTaxRuleCache) Get(ctx context.Context) ([]pricing.TaxRule, bool, error) {
	data, err := c.client.Get(ctx, taxRuleCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read tax rule cache: %w", err)
	}

	var rules []pricing.TaxRule
	if err := json.Unmarshal(data, &rules); err != nil {
		// A corrupt entry is treated as a miss so the caller reloads
		// from the repository and overwrites it
		return nil, false, nil
	}

	return rules, true, nil
}

// Set stores the rule set with the configured TTL
func (c *RedisTaxRuleCache) Set(ctx context.Context, rules []pricing.TaxRule) error {
	if rules == nil {
		rules = []pricing.TaxRule{}
	}

	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to serialize tax rules: %w", err)
	}

	if err := c.client.Set(ctx, taxRuleCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tax rule cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached rule set
func (c *RedisTaxRuleCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, taxRuleCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tax rule cache: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisTaxRuleCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
