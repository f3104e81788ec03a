package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Discount evaluation errors. All of these are recoverable: checkout
// proceeds without a discount and only the discount state is cleared.
var (
	ErrDiscountNotFound  = shared.NewDomainError("DISCOUNT_NOT_FOUND", "Discount code not found")
	ErrDiscountInvalid   = shared.NewDomainError("DISCOUNT_INVALID", "Discount code is not valid")
	ErrDiscountExhausted = shared.NewDomainError("DISCOUNT_EXHAUSTED", "Discount code has reached its usage limit")
)

// ErrDeliveryRequired is a caller precondition violation: pricing was
// attempted with no delivery option selected
var ErrDeliveryRequired = shared.NewDomainError("DELIVERY_REQUIRED", "A delivery option must be selected before pricing")

// NewDiscountBelowMinimumError builds the below-minimum rejection with the
// shortfall in the message so the user knows how much to add
func NewDiscountBelowMinimumError(shortfall, minimum decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError("DISCOUNT_BELOW_MINIMUM",
		fmt.Sprintf("Order subtotal is %s below the %s minimum for this discount",
			shortfall.StringFixed(2), minimum.StringFixed(2)))
}
