package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/pricing"
)

// AdminPricingHandler handles admin-side order pricing and tax rule endpoints
type AdminPricingHandler struct {
	BaseHandler
	quoteService *checkoutapp.QuoteService
}

// NewAdminPricingHandler creates a new AdminPricingHandler
func NewAdminPricingHandler(quoteService *checkoutapp.QuoteService) *AdminPricingHandler {
	return &AdminPricingHandler{
		quoteService: quoteService,
	}
}

// CreateTaxRuleRequest represents a request to create or update a tax rule
// @Description Request body for configuring a tax rule
type CreateTaxRuleRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=255" example:"State Tax"`
	Type      string          `json:"type" binding:"required,oneof=percentage fixed" example:"percentage"`
	AppliesTo string          `json:"applies_to" binding:"omitempty,max=20" example:"products"`
	Rate      decimal.Decimal `json:"rate" example:"8.5"`
}

// QuoteOrder prices an order draft in the admin order editor. Admin
// order entry reuses the storefront quoting semantics so a draft and
// the customer-facing cart always price identically.
// @Summary Price an admin order draft
// @Tags admin
// @Accept json
// @Produce json
// @Param request body checkoutapp.QuoteRequest true "Order draft to price"
// @Success 200 {object} dto.Response{data=checkoutapp.QuoteResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /admin/orders/quote [post]
func (h *AdminPricingHandler) QuoteOrder(c *gin.Context) {
	var req checkoutapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quoteService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListTaxRules lists the active tax rules
// @Summary List tax rules
// @Tags admin
// @Produce json
// @Success 200 {object} dto.Response{data=[]checkoutapp.TaxRuleResponse}
// @Router /admin/tax-rules [get]
func (h *AdminPricingHandler) ListTaxRules(c *gin.Context) {
	rules, err := h.quoteService.ListTaxRules(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rules)
}

// CreateTaxRule configures a new tax rule
// @Summary Create a tax rule
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateTaxRuleRequest true "Rule to create"
// @Success 201 {object} dto.Response{data=checkoutapp.TaxRuleResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /admin/tax-rules [post]
func (h *AdminPricingHandler) CreateTaxRule(c *gin.Context) {
	var req CreateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scope := pricing.TaxScope(req.AppliesTo)
	if req.AppliesTo == "" {
		scope = pricing.TaxScopeTotal
	}

	rule := pricing.TaxRule{
		Name:  req.Name,
		Type:  pricing.TaxRuleType(req.Type),
		Scope: scope,
		Rate:  req.Rate,
	}

	if err := h.quoteService.SaveTaxRule(c.Request.Context(), &rule); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, checkoutapp.ToTaxRuleResponse(rule))
}

// RegisterRoutes registers admin pricing routes
func (h *AdminPricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.POST("/orders/quote", h.QuoteOrder)
		admin.GET("/tax-rules", h.ListTaxRules)
		admin.POST("/tax-rules", h.CreateTaxRule)
	}
}
