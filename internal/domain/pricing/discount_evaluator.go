package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// DiscountResult is the outcome of a successful discount evaluation.
// Amounts are rounded half-up to 2 places at the point of computation so
// repeated reads of a cached result stay stable.
//
// DiscountAmount is the full saving shown to the customer. ProductDiscount
// is the portion of it realized against the product subtotal; savings
// realized through a reduced delivery fee are already reflected in
// AdjustedDeliveryFee and must not be subtracted again.
type DiscountResult struct {
	Code                string
	DiscountAmount      decimal.Decimal
	ProductDiscount     decimal.Decimal
	AdjustedDeliveryFee decimal.Decimal
}

// EvaluateDiscountCode normalizes and looks up a user-supplied code, then
// evaluates the rule against the current order context. A missing rule is
// reported as ErrDiscountNotFound.
//
// Evaluation never increments the rule's usage count; that happens only
// at order-commit time via DiscountRuleRepository.Redeem.
func EvaluateDiscountCode(ctx context.Context, code string, cart Cart, deliveryFee decimal.Decimal, lookup DiscountRuleLookup, at time.Time) (*DiscountResult, error) {
	rule, err := lookup.FindByCode(ctx, NormalizeCode(code))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return EvaluateDiscount(rule, cart.Subtotal(), deliveryFee, at)
}

// EvaluateDiscount validates a discount rule against the order context and
// computes the applied amount. Validation fails fast: the first violated
// condition wins.
func EvaluateDiscount(rule *DiscountRule, subtotal, deliveryFee decimal.Decimal, at time.Time) (*DiscountResult, error) {
	if !rule.IsActive || !rule.IsWithinValidity(at) {
		return nil, ErrDiscountInvalid
	}
	if rule.IsExhausted() {
		return nil, ErrDiscountExhausted
	}
	if subtotal.LessThan(rule.MinimumAmount) {
		shortfall := rule.MinimumAmount.Sub(subtotal)
		return nil, NewDiscountBelowMinimumError(shortfall, rule.MinimumAmount)
	}

	result := &DiscountResult{
		Code:                rule.Code,
		AdjustedDeliveryFee: deliveryFee.Round(2),
	}

	switch rule.Type {
	case DiscountTypePercentage:
		// Product-scoped by policy regardless of the stored scope;
		// percentage discounts never touch the delivery fee.
		raw := subtotal.Mul(rule.NormalizedValue())
		if rule.MaxDiscount != nil && raw.GreaterThan(*rule.MaxDiscount) {
			raw = *rule.MaxDiscount
		}
		result.DiscountAmount = decimal.Min(raw, subtotal).Round(2)
		result.ProductDiscount = result.DiscountAmount

	case DiscountTypeFixedAmount:
		if rule.Scope == TaxScopeShipping {
			adjusted := decimal.Max(decimal.Zero, deliveryFee.Sub(rule.Value)).Round(2)
			result.AdjustedDeliveryFee = adjusted
			result.DiscountAmount = deliveryFee.Sub(adjusted).Round(2)
		} else {
			result.DiscountAmount = decimal.Min(rule.Value, subtotal).Round(2)
			result.ProductDiscount = result.DiscountAmount
		}

	case DiscountTypeFreeShipping:
		// The saved delivery fee is reported as the discount for display,
		// even though it is realized through the fee, not the subtotal.
		result.AdjustedDeliveryFee = decimal.Zero
		result.DiscountAmount = deliveryFee.Round(2)

	default:
		return nil, shared.NewDomainError("DISCOUNT_RULE_INVALID", "Discount rule has unrecognized type")
	}

	return result, nil
}
