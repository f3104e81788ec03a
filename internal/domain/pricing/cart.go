package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CartLine represents a single product line in a cart.
// Lines are owned by the caller and never mutated by the pricing core.
type CartLine struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
}

// NewCartLine creates a validated cart line
func NewCartLine(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int64) (*CartLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartLine{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
	}, nil
}

// Subtotal returns unit price times quantity, rounded half-up to 2 places
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
}

// Cart is an ordered sequence of cart lines. Line order is irrelevant
// for totals.
type Cart []CartLine

// Subtotal returns the sum of all line subtotals
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
