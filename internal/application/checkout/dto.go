package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/pricing"
)

// QuoteItemRequest is one cart line in a quote request
type QuoteItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest represents a request to price a cart.
// DeliveryFee is a pointer so a missing delivery selection can be
// told apart from free delivery.
type QuoteRequest struct {
	Items        []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryFee  *decimal.Decimal   `json:"delivery_fee"`
	DiscountCode string             `json:"discount_code" binding:"max=64"`
}

// DiscountErrorInfo reports why a discount code was not applied.
// A quote with a rejected code still succeeds; only the discount
// portion is cleared.
type DiscountErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QuoteResponse is the full price breakdown for a cart
type QuoteResponse struct {
	Subtotal         decimal.Decimal      `json:"subtotal"`
	DiscountCode     *string              `json:"discount_code,omitempty"`
	DiscountAmount   decimal.Decimal      `json:"discount_amount"`
	DeliveryFee      decimal.Decimal      `json:"delivery_fee"`
	TaxTotal         decimal.Decimal      `json:"tax_total"`
	TaxBreakdown     []pricing.AppliedTax `json:"tax_breakdown"`
	EffectiveTaxRate decimal.Decimal      `json:"effective_tax_rate"`
	GrandTotal       decimal.Decimal      `json:"grand_total"`
	Currency         string               `json:"currency"`
	DiscountError    *DiscountErrorInfo   `json:"discount_error,omitempty"`
}

// ValidateDiscountRequest represents a standalone discount code check
type ValidateDiscountRequest struct {
	Items        []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryFee  *decimal.Decimal   `json:"delivery_fee"`
	DiscountCode string             `json:"discount_code" binding:"required,min=1,max=64"`
}

// DiscountValidationResponse reports the outcome of a code check
type DiscountValidationResponse struct {
	Valid               bool               `json:"valid"`
	Code                string             `json:"code"`
	DiscountAmount      decimal.Decimal    `json:"discount_amount"`
	AdjustedDeliveryFee decimal.Decimal    `json:"adjusted_delivery_fee"`
	Error               *DiscountErrorInfo `json:"error,omitempty"`
}

// TaxRuleResponse represents a tax rule in admin API responses
type TaxRuleResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	AppliesTo string          `json:"applies_to"`
	Rate      decimal.Decimal `json:"rate"`
}

// ToTaxRuleResponse converts a domain tax rule to its API representation
func ToTaxRuleResponse(rule pricing.TaxRule) TaxRuleResponse {
	return TaxRuleResponse{
		ID:        rule.ID,
		Name:      rule.Name,
		Type:      string(rule.Type),
		AppliesTo: string(rule.Scope),
		Rate:      rule.Rate,
	}
}
