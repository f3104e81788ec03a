package pricing

import (
	"github.com/shopspring/decimal"
)

// GlobalTaxRate is the configured fallback applied when no explicit tax
// rules are active. It only ever taxes the product base.
type GlobalTaxRate struct {
	Name string
	Rate decimal.Decimal
}

// TaxComputation is the result of running the active tax rules against
// an order's bases
type TaxComputation struct {
	Total     decimal.Decimal
	Breakdown []AppliedTax
	// EffectiveRate is Total over the product base, as a percent. It is
	// display-only and never authoritative: Total is always the sum of
	// the itemized rule amounts.
	EffectiveRate decimal.Decimal
}

// Calculator computes taxes and full pricing results. It is stateless and
// safe for concurrent use.
type Calculator struct {
	fallback GlobalTaxRate
}

// NewCalculator creates a Calculator with the configured global fallback
// rate
func NewCalculator(fallback GlobalTaxRate) *Calculator {
	return &Calculator{fallback: fallback}
}

// ComputeTax runs every rule in order against its base and sums the
// amounts. productBase and shippingBase are clamped to zero. With no
// rules at all the global fallback rate applies to the product base
// only; explicit rules fully replace the fallback, never add to it.
func (c *Calculator) ComputeTax(productBase, shippingBase decimal.Decimal, rules []TaxRule) (*TaxComputation, error) {
	productBase = decimal.Max(decimal.Zero, productBase)
	shippingBase = decimal.Max(decimal.Zero, shippingBase)
	combinedBase := productBase.Add(shippingBase)

	if len(rules) == 0 {
		return c.computeFallback(productBase), nil
	}

	breakdown := make([]AppliedTax, 0, len(rules))
	total := decimal.Zero
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}

		var base decimal.Decimal
		switch rule.Scope {
		case TaxScopeProducts:
			base = productBase
		case TaxScopeShipping:
			base = shippingBase
		default:
			// Unknown scopes fall open to the broadest base rather than
			// silently skipping tax.
			base = combinedBase
		}

		var amount decimal.Decimal
		switch rule.Type {
		case TaxRuleTypePercentage:
			if base.IsPositive() {
				amount = base.Mul(rule.NormalizedRate()).Round(2)
			} else {
				amount = decimal.Zero
			}
		case TaxRuleTypeFixed:
			// A flat levy charges once per order even on a zero base.
			amount = rule.Rate.Round(2)
		}

		total = total.Add(amount)
		breakdown = append(breakdown, AppliedTax{
			RuleID: rule.ID,
			Name:   rule.Name,
			Type:   rule.Type,
			Scope:  rule.Scope,
			Rate:   rule.Rate,
			Amount: amount,
		})
	}

	return &TaxComputation{
		Total:         total.Round(2),
		Breakdown:     breakdown,
		EffectiveRate: effectiveRate(total, productBase),
	}, nil
}

// computeFallback applies the configured global rate to the product base,
// producing at most one synthetic breakdown entry
func (c *Calculator) computeFallback(productBase decimal.Decimal) *TaxComputation {
	if c.fallback.Rate.IsZero() || !productBase.IsPositive() {
		return &TaxComputation{
			Total:         decimal.Zero,
			Breakdown:     []AppliedTax{},
			EffectiveRate: decimal.Zero,
		}
	}

	amount := productBase.Mul(normalizeRate(c.fallback.Rate)).Round(2)
	return &TaxComputation{
		Total: amount,
		Breakdown: []AppliedTax{{
			Name:   c.fallback.Name,
			Type:   TaxRuleTypePercentage,
			Scope:  TaxScopeProducts,
			Rate:   c.fallback.Rate,
			Amount: amount,
		}},
		EffectiveRate: effectiveRate(amount, productBase),
	}
}

func effectiveRate(total, productBase decimal.Decimal) decimal.Decimal {
	if !productBase.IsPositive() {
		return decimal.Zero
	}
	return total.Div(productBase).Mul(decimal.NewFromInt(100)).Round(2)
}
