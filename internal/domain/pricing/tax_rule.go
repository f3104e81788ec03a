package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// TaxRuleType represents how a tax rule computes its amount
type TaxRuleType string

const (
	// TaxRuleTypePercentage applies a rate against the rule's base
	TaxRuleTypePercentage TaxRuleType = "percentage"
	// TaxRuleTypeFixed charges a flat amount once per order, regardless
	// of base size
	TaxRuleTypeFixed TaxRuleType = "fixed"
)

// IsValid checks if the type is a recognized TaxRuleType
func (t TaxRuleType) IsValid() bool {
	switch t {
	case TaxRuleTypePercentage, TaxRuleTypeFixed:
		return true
	}
	return false
}

// String returns the string representation of TaxRuleType
func (t TaxRuleType) String() string {
	return string(t)
}

// TaxScope represents which monetary base a tax rule is computed against
type TaxScope string

const (
	// TaxScopeProducts taxes the post-discount product subtotal
	TaxScopeProducts TaxScope = "products"
	// TaxScopeShipping taxes the adjusted delivery fee
	TaxScopeShipping TaxScope = "shipping"
	// TaxScopeTotal taxes products plus shipping combined
	TaxScopeTotal TaxScope = "total"
)

// IsValid checks if the scope is a recognized TaxScope
func (s TaxScope) IsValid() bool {
	switch s {
	case TaxScopeProducts, TaxScopeShipping, TaxScopeTotal:
		return true
	}
	return false
}

// String returns the string representation of TaxScope
func (s TaxScope) String() string {
	return string(s)
}

// TaxRule is one active tax rule from the tax rule store.
// Rule order in a snapshot is significant: the breakdown preserves it.
type TaxRule struct {
	ID    uuid.UUID
	Name  string
	Type  TaxRuleType
	Scope TaxScope
	Rate  decimal.Decimal
}

// Validate checks the rule for configuration defects. An unrecognized
// type or a negative rate is rejected; an unrecognized scope is tolerated
// here because computation falls open to the combined base for it.
func (r TaxRule) Validate() error {
	if r.Name == "" {
		return shared.NewDomainError("TAX_RULE_INVALID", "Tax rule name cannot be empty")
	}
	if !r.Type.IsValid() {
		return shared.NewDomainError("TAX_RULE_INVALID",
			fmt.Sprintf("Tax rule %q has unrecognized type %q", r.Name, r.Type))
	}
	if r.Rate.IsNegative() {
		return shared.NewDomainError("TAX_RULE_INVALID",
			fmt.Sprintf("Tax rule %q has negative rate %s", r.Name, r.Rate.String()))
	}
	return nil
}

// NormalizedRate returns the percentage rate as a fraction. Stored rates
// may be whole-number percents (15) or fractions (0.15); anything above 1
// is treated as a percent.
func (r TaxRule) NormalizedRate() decimal.Decimal {
	return normalizeRate(r.Rate)
}

func normalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// AppliedTax is one entry of a tax breakdown: a rule plus the amount it
// contributed to the order
type AppliedTax struct {
	RuleID uuid.UUID       `json:"rule_id"`
	Name   string          `json:"name"`
	Type   TaxRuleType     `json:"type"`
	Scope  TaxScope        `json:"applies_to"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}
