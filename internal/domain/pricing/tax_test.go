package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percentRule(name string, scope TaxScope, rate float64) TaxRule {
	return TaxRule{
		ID:    uuid.New(),
		Name:  name,
		Type:  TaxRuleTypePercentage,
		Scope: scope,
		Rate:  decimal.NewFromFloat(rate),
	}
}

func fixedRule(name string, scope TaxScope, amount float64) TaxRule {
	return TaxRule{
		ID:    uuid.New(),
		Name:  name,
		Type:  TaxRuleTypeFixed,
		Scope: scope,
		Rate:  decimal.NewFromFloat(amount),
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(GlobalTaxRate{Name: "Sales Tax", Rate: decimal.NewFromInt(8)})
}

func TestComputeTax_SinglePercentageRule(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("VAT", TaxScopeProducts, 15)}

	result, err := calc.ComputeTax(d(1000), d(50), rules)
	require.NoError(t, err)
	assert.Equal(t, "150.00", result.Total.StringFixed(2))
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "VAT", result.Breakdown[0].Name)
	assert.Equal(t, "150.00", result.Breakdown[0].Amount.StringFixed(2))
	assert.Equal(t, "15.00", result.EffectiveRate.StringFixed(2))
}

func TestComputeTax_BaseSelection(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name  string
		scope TaxScope
		want  string
	}{
		{"products scope uses product base", TaxScopeProducts, "100.00"},
		{"shipping scope uses shipping base", TaxScopeShipping, "5.00"},
		{"total scope uses combined base", TaxScopeTotal, "105.00"},
		{"unknown scope falls open to combined base", TaxScope("galactic"), "105.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []TaxRule{percentRule("Tax", tt.scope, 10)}
			result, err := calc.ComputeTax(d(1000), d(50), rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Total.StringFixed(2))
		})
	}
}

func TestComputeTax_FixedRuleChargesOnZeroBase(t *testing.T) {
	// Scenario: fixed shipping levy plus percentage-of-total, zero delivery fee.
	calc := newTestCalculator()
	rules := []TaxRule{
		fixedRule("Handling Levy", TaxScopeShipping, 5),
		percentRule("Service Tax", TaxScopeTotal, 2),
	}

	result, err := calc.ComputeTax(d(1000), decimal.Zero, rules)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "5.00", result.Breakdown[0].Amount.StringFixed(2))
	assert.Equal(t, "20.00", result.Breakdown[1].Amount.StringFixed(2))
	assert.Equal(t, "25.00", result.Total.StringFixed(2))
}

func TestComputeTax_PercentageOnZeroBaseIsZero(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("Shipping Tax", TaxScopeShipping, 10)}

	result, err := calc.ComputeTax(d(1000), decimal.Zero, rules)
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Total.StringFixed(2))
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "0.00", result.Breakdown[0].Amount.StringFixed(2))
}

func TestComputeTax_CompoundingRulesSum(t *testing.T) {
	// Two rules on the same base contribute independently.
	calc := newTestCalculator()
	rules := []TaxRule{
		percentRule("VAT", TaxScopeProducts, 20),
		percentRule("Service Tax", TaxScopeProducts, 5),
	}

	result, err := calc.ComputeTax(d(100), d(10), rules)
	require.NoError(t, err)
	assert.Equal(t, "25.00", result.Total.StringFixed(2))
	assert.Len(t, result.Breakdown, 2)
}

func TestComputeTax_ZeroRateRuleKeptInBreakdown(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("Exempt Category", TaxScopeProducts, 0)}

	result, err := calc.ComputeTax(d(1000), d(50), rules)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "0.00", result.Breakdown[0].Amount.StringFixed(2))
}

func TestComputeTax_BreakdownPreservesRuleOrder(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{
		percentRule("First", TaxScopeProducts, 1),
		fixedRule("Second", TaxScopeTotal, 2),
		percentRule("Third", TaxScopeShipping, 3),
	}

	result, err := calc.ComputeTax(d(100), d(10), rules)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, "First", result.Breakdown[0].Name)
	assert.Equal(t, "Second", result.Breakdown[1].Name)
	assert.Equal(t, "Third", result.Breakdown[2].Name)
}

func TestComputeTax_NegativeBasesClampToZero(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("VAT", TaxScopeTotal, 10)}

	result, err := calc.ComputeTax(d(-100), d(-50), rules)
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Total.StringFixed(2))
}

func TestComputeTax_NegativeRateRejected(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("Broken", TaxScopeProducts, -10)}

	_, err := calc.ComputeTax(d(1000), d(50), rules)
	assert.Error(t, err)
}

func TestComputeTax_UnrecognizedTypeRejected(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{{
		ID:    uuid.New(),
		Name:  "Mystery",
		Type:  TaxRuleType("surcharge"),
		Scope: TaxScopeProducts,
		Rate:  decimal.NewFromInt(5),
	}}

	_, err := calc.ComputeTax(d(1000), d(50), rules)
	assert.Error(t, err)
}

// ============================================
// Global fallback rate
// ============================================

func TestComputeTax_FallbackWhenNoRules(t *testing.T) {
	calc := newTestCalculator()

	result, err := calc.ComputeTax(d(1000), d(50), nil)
	require.NoError(t, err)
	// 8% of the product base only; shipping is not taxed by the fallback.
	assert.Equal(t, "80.00", result.Total.StringFixed(2))
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "Sales Tax", result.Breakdown[0].Name)
	assert.Equal(t, TaxScopeProducts, result.Breakdown[0].Scope)
}

func TestComputeTax_FallbackNeverRunsWithExplicitRules(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{percentRule("VAT", TaxScopeProducts, 15)}

	result, err := calc.ComputeTax(d(1000), d(50), rules)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	assert.NotEqual(t, "Sales Tax", result.Breakdown[0].Name)
	assert.Equal(t, "150.00", result.Total.StringFixed(2))
}

func TestComputeTax_FallbackZeroRate(t *testing.T) {
	calc := NewCalculator(GlobalTaxRate{Name: "None", Rate: decimal.Zero})

	result, err := calc.ComputeTax(d(1000), d(50), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Total.StringFixed(2))
	assert.Empty(t, result.Breakdown)
}

func TestComputeTax_FallbackZeroProductBase(t *testing.T) {
	calc := newTestCalculator()

	result, err := calc.ComputeTax(decimal.Zero, d(50), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Total.StringFixed(2))
	assert.Empty(t, result.Breakdown)
}

func TestComputeTax_EffectiveRateZeroOnZeroProductBase(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{fixedRule("Levy", TaxScopeShipping, 5)}

	result, err := calc.ComputeTax(decimal.Zero, d(50), rules)
	require.NoError(t, err)
	assert.Equal(t, "5.00", result.Total.StringFixed(2))
	assert.True(t, result.EffectiveRate.IsZero())
}

func TestComputeTax_BreakdownSumInvariant(t *testing.T) {
	calc := newTestCalculator()
	rules := []TaxRule{
		percentRule("A", TaxScopeProducts, 7.25),
		percentRule("B", TaxScopeShipping, 3.33),
		fixedRule("C", TaxScopeTotal, 1.99),
		percentRule("D", TaxScopeTotal, 0.5),
	}

	result, err := calc.ComputeTax(d(123.45), d(9.99), rules)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, entry := range result.Breakdown {
		sum = sum.Add(entry.Amount)
	}
	assert.True(t, result.Total.Equal(sum.Round(2)))
}
