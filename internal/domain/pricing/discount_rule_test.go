package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"summer10", "SUMMER10"},
		{"Summer10", "SUMMER10"},
		{"  SUMMER10  ", "SUMMER10"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.input))
		})
	}
}

func TestDiscountType_IsValid(t *testing.T) {
	assert.True(t, DiscountTypePercentage.IsValid())
	assert.True(t, DiscountTypeFixedAmount.IsValid())
	assert.True(t, DiscountTypeFreeShipping.IsValid())
	assert.False(t, DiscountType("bogo").IsValid())
	assert.False(t, DiscountType("").IsValid())
}

func TestDiscountRule_IsWithinValidity(t *testing.T) {
	now := time.Now()
	until := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		validFrom  time.Time
		validUntil *time.Time
		at         time.Time
		want       bool
	}{
		{"inside open-ended window", now.Add(-time.Hour), nil, now, true},
		{"inside bounded window", now.Add(-time.Hour), &until, now, true},
		{"before window starts", now.Add(time.Hour), nil, now, false},
		{"after window ends", now.Add(-48 * time.Hour), &until, until.Add(time.Minute), false},
		{"exactly at start", now, nil, now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := DiscountRule{ValidFrom: tt.validFrom, ValidUntil: tt.validUntil}
			assert.Equal(t, tt.want, rule.IsWithinValidity(tt.at))
		})
	}
}

func TestDiscountRule_IsExhausted(t *testing.T) {
	limit := int64(100)

	t.Run("no limit never exhausts", func(t *testing.T) {
		rule := DiscountRule{UsedCount: 1000000}
		assert.False(t, rule.IsExhausted())
	})

	t.Run("under limit", func(t *testing.T) {
		rule := DiscountRule{UsageLimit: &limit, UsedCount: 99}
		assert.False(t, rule.IsExhausted())
	})

	t.Run("at limit", func(t *testing.T) {
		rule := DiscountRule{UsageLimit: &limit, UsedCount: 100}
		assert.True(t, rule.IsExhausted())
	})
}

func TestDiscountRule_NormalizedValue(t *testing.T) {
	rule := DiscountRule{Value: decimal.NewFromInt(10)}
	assert.True(t, rule.NormalizedValue().Equal(decimal.RequireFromString("0.1")))

	rule.Value = decimal.RequireFromString("0.25")
	assert.True(t, rule.NormalizedValue().Equal(decimal.RequireFromString("0.25")))
}

func TestDiscountRule_Validate(t *testing.T) {
	valid := DiscountRule{
		ID:    uuid.New(),
		Code:  "WELCOME10",
		Type:  DiscountTypePercentage,
		Value: decimal.NewFromInt(10),
	}

	t.Run("valid rule", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("empty code rejected", func(t *testing.T) {
		rule := valid
		rule.Code = ""
		assert.Error(t, rule.Validate())
	})

	t.Run("unrecognized type rejected", func(t *testing.T) {
		rule := valid
		rule.Type = DiscountType("loyalty")
		assert.Error(t, rule.Validate())
	})

	t.Run("negative value rejected", func(t *testing.T) {
		rule := valid
		rule.Value = decimal.NewFromInt(-1)
		assert.Error(t, rule.Validate())
	})

	t.Run("negative minimum rejected", func(t *testing.T) {
		rule := valid
		rule.MinimumAmount = decimal.NewFromInt(-1)
		assert.Error(t, rule.Validate())
	})
}
