package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaxRuleRepository implements pricing.TaxRuleRepository using GORM
type GormTaxRuleRepository struct {
	db *gorm.DB
}

// NewGormTaxRuleRepository creates a new GormTaxRuleRepository
func NewGormTaxRuleRepository(db *gorm.DB) *GormTaxRuleRepository {
	return &GormTaxRuleRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormTaxRuleRepository) WithTx(tx *gorm.DB) *GormTaxRuleRepository {
	return &GormTaxRuleRepository{db: tx}
}

// FindActive returns all active tax rules in priority order. Rules
// within the same priority keep insertion order via created_at.
func (r *GormTaxRuleRepository) FindActive(ctx context.Context) ([]pricing.TaxRule, error) {
	var rows []models.TaxRuleModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	rules := make([]pricing.TaxRule, 0, len(rows))
	for i := range rows {
		rules = append(rules, rows[i].ToDomain())
	}
	return rules, nil
}

// Save creates or updates a tax rule
func (r *GormTaxRuleRepository) Save(ctx context.Context, rule *pricing.TaxRule) error {
	model := models.TaxRuleModelFromDomain(rule)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "rule_type", "applies_to", "rate", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return err
	}

	rule.ID = model.ID
	return nil
}
