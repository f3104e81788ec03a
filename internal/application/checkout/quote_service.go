package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// QuoteService prices carts for checkout and admin order entry. It is
// the only component allowed to touch discount usage counters, and it
// does so exclusively through RedeemDiscount at order-commit time.
type QuoteService struct {
	discountRepo pricing.DiscountRuleRepository
	taxRuleRepo  pricing.TaxRuleRepository
	taxRuleCache pricing.TaxRuleCache
	calculator   *pricing.Calculator
	logger       *zap.Logger

	// now is overridable for tests
	now func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	discountRepo pricing.DiscountRuleRepository,
	taxRuleRepo pricing.TaxRuleRepository,
	taxRuleCache pricing.TaxRuleCache,
	calculator *pricing.Calculator,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		discountRepo: discountRepo,
		taxRuleRepo:  taxRuleRepo,
		taxRuleCache: taxRuleCache,
		calculator:   calculator,
		logger:       logger,
		now:          time.Now,
	}
}

// Quote prices a cart. A rejected discount code does not fail the
// quote: pricing proceeds without the discount and the rejection is
// reported in the response so the UI can surface it.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	cart, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}

	if req.DeliveryFee == nil {
		return nil, pricing.ErrDeliveryRequired
	}
	if req.DeliveryFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}
	deliveryFee := req.DeliveryFee.Round(2)

	var discount *pricing.DiscountResult
	var discountErr *DiscountErrorInfo
	if req.DiscountCode != "" {
		discount, err = pricing.EvaluateDiscountCode(ctx, req.DiscountCode, cart, deliveryFee, s.discountRepo, s.now())
		if err != nil {
			rejection, ok := asDiscountRejection(err)
			if !ok {
				return nil, err
			}
			s.logger.Info("discount code rejected",
				zap.String("code", pricing.NormalizeCode(req.DiscountCode)),
				zap.String("reason", rejection.Code),
			)
			discount = nil
			discountErr = rejection
		}
	}

	rules, err := s.loadTaxRules(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.calculator.Price(cart, deliveryFee, discount, rules)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{
		Subtotal:         result.Subtotal,
		DiscountAmount:   result.DiscountAmount,
		DeliveryFee:      result.AdjustedDeliveryFee,
		TaxTotal:         result.TaxTotal,
		TaxBreakdown:     result.TaxBreakdown,
		EffectiveTaxRate: result.EffectiveTaxRate,
		GrandTotal:       result.GrandTotal,
		Currency:         string(valueobject.DefaultCurrency),
		DiscountError:    discountErr,
	}
	if discount != nil {
		code := discount.Code
		resp.DiscountCode = &code
	}
	return resp, nil
}

// ValidateDiscount checks a code against the current cart without
// pricing the whole order. Rejections come back in the response body,
// not as errors, so the storefront can show them inline.
func (s *QuoteService) ValidateDiscount(ctx context.Context, req ValidateDiscountRequest) (*DiscountValidationResponse, error) {
	cart, err := buildCart(req.Items)
	if err != nil {
		return nil, err
	}

	deliveryFee := decimal.Zero
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
		}
		deliveryFee = req.DeliveryFee.Round(2)
	}

	result, err := pricing.EvaluateDiscountCode(ctx, req.DiscountCode, cart, deliveryFee, s.discountRepo, s.now())
	if err != nil {
		rejection, ok := asDiscountRejection(err)
		if !ok {
			return nil, err
		}
		return &DiscountValidationResponse{
			Valid: false,
			Code:  pricing.NormalizeCode(req.DiscountCode),
			Error: rejection,
		}, nil
	}

	return &DiscountValidationResponse{
		Valid:               true,
		Code:                result.Code,
		DiscountAmount:      result.DiscountAmount,
		AdjustedDeliveryFee: result.AdjustedDeliveryFee,
	}, nil
}

// RedeemDiscount consumes one usage slot for a code. It belongs in the
// order-commit path, after payment authorization, never during quoting.
func (s *QuoteService) RedeemDiscount(ctx context.Context, code string) error {
	err := s.discountRepo.Redeem(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return pricing.ErrDiscountNotFound
		}
		return err
	}

	s.logger.Info("discount code redeemed", zap.String("code", pricing.NormalizeCode(code)))
	return nil
}

// ListTaxRules returns the active tax rules for the admin settings
// screen. Reads go straight to the repository so admins always see
// current state, not the cached snapshot.
func (s *QuoteService) ListTaxRules(ctx context.Context) ([]TaxRuleResponse, error) {
	rules, err := s.taxRuleRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TaxRuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, ToTaxRuleResponse(rule))
	}
	return responses, nil
}

// SaveTaxRule persists a rule and drops the cached snapshot so the
// next quote sees the change
func (s *QuoteService) SaveTaxRule(ctx context.Context, rule *pricing.TaxRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	if err := s.taxRuleRepo.Save(ctx, rule); err != nil {
		return err
	}
	if err := s.taxRuleCache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate tax rule cache", zap.Error(err))
	}
	return nil
}

// loadTaxRules reads the active rule set through the cache
func (s *QuoteService) loadTaxRules(ctx context.Context) ([]pricing.TaxRule, error) {
	rules, ok, err := s.taxRuleCache.Get(ctx)
	if err != nil {
		s.logger.Warn("tax rule cache read failed", zap.Error(err))
	} else if ok {
		return rules, nil
	}

	rules, err = s.taxRuleRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.taxRuleCache.Set(ctx, rules); err != nil {
		s.logger.Warn("tax rule cache write failed", zap.Error(err))
	}
	return rules, nil
}

// buildCart validates request items into a domain cart
func buildCart(items []QuoteItemRequest) (pricing.Cart, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	}

	cart := make(pricing.Cart, 0, len(items))
	for _, item := range items {
		price, err := valueobject.NewMoney(item.UnitPrice, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		line, err := pricing.NewCartLine(item.ProductID, item.ProductName, price, item.Quantity)
		if err != nil {
			return nil, err
		}
		cart = append(cart, *line)
	}
	return cart, nil
}

// asDiscountRejection classifies recoverable discount failures. Anything
// else (repository errors, timeouts) propagates as a real error.
func asDiscountRejection(err error) (*DiscountErrorInfo, bool) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return nil, false
	}

	switch domainErr.Code {
	case "DISCOUNT_NOT_FOUND", "DISCOUNT_INVALID", "DISCOUNT_EXHAUSTED", "DISCOUNT_BELOW_MINIMUM":
		return &DiscountErrorInfo{Code: domainErr.Code, Message: domainErr.Message}, true
	}
	return nil, false
}
