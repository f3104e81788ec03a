package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLine(t *testing.T, price float64, quantity int64) CartLine {
	t.Helper()
	line, err := NewCartLine(uuid.New(), "Test Product", valueobject.NewMoneyUSDFromFloat(price), quantity)
	require.NoError(t, err)
	return *line
}

func TestNewCartLine(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		productID := uuid.New()
		line, err := NewCartLine(productID, "Widget", valueobject.NewMoneyUSDFromFloat(19.99), 3)
		require.NoError(t, err)
		assert.Equal(t, productID, line.ProductID)
		assert.Equal(t, "Widget", line.ProductName)
		assert.Equal(t, int64(3), line.Quantity)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("rejects nil product ID", func(t *testing.T) {
		_, err := NewCartLine(uuid.Nil, "Widget", valueobject.NewMoneyUSDFromFloat(1), 1)
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := NewCartLine(uuid.New(), "Widget", valueobject.NewMoneyUSDFromFloat(-0.01), 1)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewCartLine(uuid.New(), "Widget", valueobject.NewMoneyUSDFromFloat(1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewCartLine(uuid.New(), "Widget", valueobject.NewMoneyUSDFromFloat(1), -5)
		assert.Error(t, err)
	})

	t.Run("allows zero unit price", func(t *testing.T) {
		line, err := NewCartLine(uuid.New(), "Freebie", valueobject.ZeroUSD(), 2)
		require.NoError(t, err)
		assert.True(t, line.Subtotal().IsZero())
	})
}

func TestCartLine_Subtotal(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		quantity int64
		want     string
	}{
		{"simple", 10.00, 3, "30.00"},
		{"single unit", 19.99, 1, "19.99"},
		{"fractional price rounds half-up", 3.335, 3, "10.01"},
		{"large quantity", 0.10, 1000, "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := makeLine(t, tt.price, tt.quantity)
			assert.Equal(t, tt.want, line.Subtotal().StringFixed(2))
		})
	}
}

func TestCart_Subtotal(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		var cart Cart
		assert.True(t, cart.Subtotal().IsZero())
		assert.True(t, cart.IsEmpty())
	})

	t.Run("sums line subtotals", func(t *testing.T) {
		cart := Cart{
			makeLine(t, 250.00, 2), // 500.00
			makeLine(t, 100.00, 5), // 500.00
		}
		assert.Equal(t, "1000.00", cart.Subtotal().StringFixed(2))
		assert.False(t, cart.IsEmpty())
	})

	t.Run("line order does not change the total", func(t *testing.T) {
		a := makeLine(t, 12.49, 3)
		b := makeLine(t, 7.77, 2)
		forward := Cart{a, b}.Subtotal()
		reverse := Cart{b, a}.Subtotal()
		assert.True(t, forward.Equal(reverse))
	})
}
