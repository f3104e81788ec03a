package cache

import (
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TaxRuleCacheFactory creates tax rule caches based on configuration
type TaxRuleCacheFactory struct {
	redisConfig config.RedisConfig
	ttl         time.Duration
	logger      *zap.Logger
}

// TaxRuleCacheFactoryOption is a functional option for configuring the factory
type TaxRuleCacheFactoryOption func(*TaxRuleCacheFactory)

// WithCacheFactoryLogger sets the logger for the factory
func WithCacheFactoryLogger(logger *zap.Logger) TaxRuleCacheFactoryOption {
	return func(f *TaxRuleCacheFactory) {
		f.logger = logger
	}
}

// NewTaxRuleCacheFactory creates a new factory
func NewTaxRuleCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...TaxRuleCacheFactoryOption) *TaxRuleCacheFactory {
	f := &TaxRuleCacheFactory{
		redisConfig: cfg,
		ttl:         ttl,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a tax rule cache. When Redis is enabled it is
// tried first; on connection failure the factory falls back to the
// in-memory cache so quoting keeps working on a single instance.
func (f *TaxRuleCacheFactory) CreateCache() pricing.TaxRuleCache {
	if f.redisConfig.Enabled {
		cache, err := NewRedisTaxRuleCache(f.redisConfig, f.ttl)
		if err == nil {
			f.logger.Info("using Redis tax rule cache")
			return cache
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory tax rule cache. "+
			"Rule changes may take longer to propagate across instances.",
			zap.Error(err),
		)
	}
	return NewInMemoryTaxRuleCache(f.ttl)
}

// taxRuleCacheAddr formats the Redis address from configuration
func taxRuleCacheAddr(cfg config.RedisConfig) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
