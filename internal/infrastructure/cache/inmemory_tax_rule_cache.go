package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/pricing"
)

// InMemoryTaxRuleCache implements TaxRuleCache with a single
// TTL-guarded snapshot. Suitable for single-instance deployments
// and as a fallback when Redis is unavailable.
type InMemoryTaxRuleCache struct {
	mu        sync.RWMutex
	rules     []pricing.TaxRule
	cached    bool
	expiresAt time.Time
	ttl       time.Duration

	// clock is overridable for tests
	clock func() time.Time
}

// NewInMemoryTaxRuleCache creates a new in-memory tax rule cache
func NewInMemoryTaxRuleCache(ttl time.Duration) *InMemoryTaxRuleCache {
	return &InMemoryTaxRuleCache{
		ttl:   ttl,
		clock: time.Now,
	}
}

// Get returns the cached snapshot if present and unexpired
func (c *InMemoryTaxRuleCache) Get(ctx context.Context) ([]pricing.TaxRule, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.cached || c.clock().After(c.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the shared snapshot
	rules := make([]pricing.TaxRule, len(c.rules))
	copy(rules, c.rules)
	return rules, true, nil
}

// Set replaces the snapshot and restarts the TTL
func (c *InMemoryTaxRuleCache) Set(ctx context.Context, rules []pricing.TaxRule) error {
	snapshot := make([]pricing.TaxRule, len(rules))
	copy(snapshot, rules)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = snapshot
	c.cached = true
	c.expiresAt = c.clock().Add(c.ttl)
	return nil
}

// Invalidate drops the snapshot
func (c *InMemoryTaxRuleCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = nil
	c.cached = false
	return nil
}
