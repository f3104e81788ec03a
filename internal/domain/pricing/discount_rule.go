package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// DiscountType represents how a discount rule reduces an order
type DiscountType string

const (
	// DiscountTypePercentage reduces the product subtotal by a rate
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFixedAmount reduces its target base by a flat amount
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
	// DiscountTypeFreeShipping zeroes the delivery fee
	DiscountTypeFreeShipping DiscountType = "free_shipping"
)

// IsValid checks if the type is a recognized DiscountType
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount, DiscountTypeFreeShipping:
		return true
	}
	return false
}

// String returns the string representation of DiscountType
func (t DiscountType) String() string {
	return string(t)
}

// DiscountScope represents which monetary base a discount targets.
// It shares the tax scope vocabulary.
type DiscountScope = TaxScope

// DiscountRule is one discount definition from the discount rule store
type DiscountRule struct {
	ID            uuid.UUID
	Code          string
	Type          DiscountType
	Value         decimal.Decimal
	MinimumAmount decimal.Decimal
	MaxDiscount   *decimal.Decimal
	Scope         DiscountScope
	ValidFrom     time.Time
	ValidUntil    *time.Time
	UsageLimit    *int64
	UsedCount     int64
	IsActive      bool
}

// NormalizeCode uppercases a user-supplied discount code for lookup.
// Codes are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks the rule for configuration defects at the store boundary
func (r DiscountRule) Validate() error {
	if r.Code == "" {
		return shared.NewDomainError("DISCOUNT_RULE_INVALID", "Discount code cannot be empty")
	}
	if !r.Type.IsValid() {
		return shared.NewDomainError("DISCOUNT_RULE_INVALID", "Discount rule has unrecognized type")
	}
	if r.Value.IsNegative() {
		return shared.NewDomainError("DISCOUNT_RULE_INVALID", "Discount value cannot be negative")
	}
	if r.MinimumAmount.IsNegative() {
		return shared.NewDomainError("DISCOUNT_RULE_INVALID", "Minimum order amount cannot be negative")
	}
	// Percentage discounts are product-scoped by policy; the scope field
	// is cross-checked at creation time and ignored at evaluation time.
	return nil
}

// IsWithinValidity reports whether the rule's validity window covers the
// given instant
func (r DiscountRule) IsWithinValidity(at time.Time) bool {
	if at.Before(r.ValidFrom) {
		return false
	}
	if r.ValidUntil != nil && at.After(*r.ValidUntil) {
		return false
	}
	return true
}

// IsExhausted reports whether the usage limit has been reached
func (r DiscountRule) IsExhausted() bool {
	return r.UsageLimit != nil && r.UsedCount >= *r.UsageLimit
}

// NormalizedValue returns a percentage discount's value as a fraction
func (r DiscountRule) NormalizedValue() decimal.Decimal {
	return normalizeRate(r.Value)
}

// DiscountRuleLookup is the read capability the evaluator needs over the
// discount rule store. Lookups are by normalized code.
type DiscountRuleLookup interface {
	// FindByCode returns the rule for a normalized code, or
	// shared.ErrNotFound
	FindByCode(ctx context.Context, code string) (*DiscountRule, error)
}

// DiscountRuleRepository is the full persistence contract for discount
// rules. Redeem is the only write: it performs the order-commit-time
// usage increment, atomically guarded against the usage limit so two
// concurrent orders cannot both consume the last redemption.
type DiscountRuleRepository interface {
	DiscountRuleLookup
	Save(ctx context.Context, rule *DiscountRule) error
	Redeem(ctx context.Context, code string) error
}

// TaxRuleRepository supplies the currently active tax rule snapshot,
// in stable rule order
type TaxRuleRepository interface {
	FindActive(ctx context.Context) ([]TaxRule, error)
	Save(ctx context.Context, rule *TaxRule) error
}
