package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/pricing"
)

// TaxRuleModel is the persistence model for tax rules. Rules are
// global and ordered by priority when loaded for evaluation.
type TaxRuleModel struct {
	BaseModel
	Name     string              `gorm:"type:varchar(255);not null"`
	Type     pricing.TaxRuleType `gorm:"column:rule_type;type:varchar(20);not null"`
	Scope    pricing.TaxScope    `gorm:"column:applies_to;type:varchar(20);not null;default:'total'"`
	Rate     decimal.Decimal     `gorm:"type:decimal(18,6);not null"`
	IsActive bool                `gorm:"not null;index:idx_tax_rules_active"`
	Priority int                 `gorm:"not null;index:idx_tax_rules_active"`
}

// TableName returns the table name for GORM
func (TaxRuleModel) TableName() string {
	return "tax_rules"
}

// ToDomain converts the persistence model to a domain TaxRule.
func (m *TaxRuleModel) ToDomain() pricing.TaxRule {
	return pricing.TaxRule{
		ID:    m.ID,
		Name:  m.Name,
		Type:  m.Type,
		Scope: m.Scope,
		Rate:  m.Rate,
	}
}

// TaxRuleModelFromDomain converts a domain TaxRule to its persistence model.
func TaxRuleModelFromDomain(rule *pricing.TaxRule) *TaxRuleModel {
	id := rule.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &TaxRuleModel{
		BaseModel: BaseModel{ID: id},
		Name:      rule.Name,
		Type:      rule.Type,
		Scope:     rule.Scope,
		Rate:      rule.Rate,
		IsActive:  true,
	}
}

// DiscountRuleModel is the persistence model for discount rules.
// The code column carries a unique index; lookups always use the
// normalized (uppercase) form.
type DiscountRuleModel struct {
	BaseModel
	Code          string               `gorm:"type:varchar(64);not null;uniqueIndex:idx_discount_rules_code"`
	Type          pricing.DiscountType `gorm:"column:discount_type;type:varchar(20);not null"`
	Value         decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	MinimumAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	MaxDiscount   *decimal.Decimal     `gorm:"type:decimal(18,4)"`
	Scope         pricing.TaxScope     `gorm:"column:applies_to;type:varchar(20);not null;default:'total'"`
	ValidFrom     time.Time            `gorm:"not null"`
	ValidUntil    *time.Time
	UsageLimit    *int64
	UsedCount     int64 `gorm:"not null"`
	IsActive      bool  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DiscountRuleModel) TableName() string {
	return "discount_rules"
}

// ToDomain converts the persistence model to a domain DiscountRule.
func (m *DiscountRuleModel) ToDomain() *pricing.DiscountRule {
	return &pricing.DiscountRule{
		ID:            m.ID,
		Code:          m.Code,
		Type:          m.Type,
		Value:         m.Value,
		MinimumAmount: m.MinimumAmount,
		MaxDiscount:   m.MaxDiscount,
		Scope:         m.Scope,
		ValidFrom:     m.ValidFrom,
		ValidUntil:    m.ValidUntil,
		UsageLimit:    m.UsageLimit,
		UsedCount:     m.UsedCount,
		IsActive:      m.IsActive,
	}
}

// DiscountRuleModelFromDomain converts a domain DiscountRule to its
// persistence model. The code is stored normalized.
func DiscountRuleModelFromDomain(rule *pricing.DiscountRule) *DiscountRuleModel {
	id := rule.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &DiscountRuleModel{
		BaseModel:     BaseModel{ID: id},
		Code:          pricing.NormalizeCode(rule.Code),
		Type:          rule.Type,
		Value:         rule.Value,
		MinimumAmount: rule.MinimumAmount,
		MaxDiscount:   rule.MaxDiscount,
		Scope:         rule.Scope,
		ValidFrom:     rule.ValidFrom,
		ValidUntil:    rule.ValidUntil,
		UsageLimit:    rule.UsageLimit,
		UsedCount:     rule.UsedCount,
		IsActive:      rule.IsActive,
	}
}
