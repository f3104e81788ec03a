package pricing

import "context"

// TaxRuleCache caches the active tax rule set between quote requests.
// Get reports a miss with ok=false; a cached empty rule set is a hit,
// since an empty set legitimately selects the fallback rate.
type TaxRuleCache interface {
	Get(ctx context.Context) (rules []TaxRule, ok bool, err error)
	Set(ctx context.Context, rules []TaxRule) error
	Invalidate(ctx context.Context) error
}
