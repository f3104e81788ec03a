package pricing

import (
	"github.com/shopspring/decimal"
)

// PricingResult is the final itemized order total. It is what both the
// checkout summary panel renders and the order-creation call persists.
type PricingResult struct {
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	AdjustedDeliveryFee decimal.Decimal
	TaxTotal            decimal.Decimal
	TaxBreakdown        []AppliedTax
	EffectiveTaxRate    decimal.Decimal
	GrandTotal          decimal.Decimal
}

// Price assembles the full pricing result for a cart, a delivery fee, an
// optional discount evaluation result, and the active tax rule snapshot.
//
// All discount validation happens upstream in the evaluator; a nil
// discount simply means no code was applied. Malformed carts and negative
// fees are the caller's contract violation and are rejected by input
// validation before this point. The grand total is clamped at zero as a
// last-resort floor against compounding rounding error.
func (c *Calculator) Price(cart Cart, deliveryFee decimal.Decimal, discount *DiscountResult, rules []TaxRule) (*PricingResult, error) {
	subtotal := cart.Subtotal()

	discountAmount := decimal.Zero
	productDiscount := decimal.Zero
	adjustedDeliveryFee := deliveryFee.Round(2)
	if discount != nil {
		discountAmount = discount.DiscountAmount
		productDiscount = discount.ProductDiscount
		adjustedDeliveryFee = discount.AdjustedDeliveryFee
	}

	// Shipping-realized savings are already in adjustedDeliveryFee; only
	// the product-realized portion reduces the subtotal.
	productBase := decimal.Max(decimal.Zero, subtotal.Sub(productDiscount))
	tax, err := c.ComputeTax(productBase, adjustedDeliveryFee, rules)
	if err != nil {
		return nil, err
	}

	grandTotal := productBase.Add(adjustedDeliveryFee).Add(tax.Total).Round(2)
	grandTotal = decimal.Max(decimal.Zero, grandTotal)

	return &PricingResult{
		Subtotal:            subtotal,
		DiscountAmount:      discountAmount,
		AdjustedDeliveryFee: adjustedDeliveryFee,
		TaxTotal:            tax.Total,
		TaxBreakdown:        tax.Breakdown,
		EffectiveTaxRate:    tax.EffectiveRate,
		GrandTotal:          grandTotal,
	}, nil
}
