package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDiscountRuleRepository implements pricing.DiscountRuleRepository using GORM
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewGormDiscountRuleRepository creates a new GormDiscountRuleRepository
func NewGormDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormDiscountRuleRepository) WithTx(tx *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: tx}
}

// FindByCode returns the discount rule for a normalized code.
// Returns shared.ErrNotFound when no rule carries the code.
func (r *GormDiscountRuleRepository) FindByCode(ctx context.Context, code string) (*pricing.DiscountRule, error) {
	var model models.DiscountRuleModel
	err := r.db.WithContext(ctx).
		Where("code = ?", pricing.NormalizeCode(code)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a discount rule. The usage counter is never
// written here; Redeem owns it.
func (r *GormDiscountRuleRepository) Save(ctx context.Context, rule *pricing.DiscountRule) error {
	model := models.DiscountRuleModelFromDomain(rule)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"discount_type", "value", "minimum_amount", "max_discount",
				"applies_to", "valid_from", "valid_until", "usage_limit",
				"is_active", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return err
	}

	rule.ID = model.ID
	rule.Code = model.Code
	return nil
}

// Redeem atomically increments the usage counter for a code at
// order-commit time. The guard on usage_limit makes concurrent
// redemptions safe: the last slot goes to exactly one caller and
// everyone else gets pricing.ErrDiscountExhausted.
func (r *GormDiscountRuleRepository) Redeem(ctx context.Context, code string) error {
	normalized := pricing.NormalizeCode(code)

	result := r.db.WithContext(ctx).
		Model(&models.DiscountRuleModel{}).
		Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", normalized).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing code from an exhausted one
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.DiscountRuleModel{}).
			Where("code = ?", normalized).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return pricing.ErrDiscountExhausted
	}

	return nil
}
