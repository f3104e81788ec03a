package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler handles storefront checkout pricing endpoints
type CheckoutHandler struct {
	BaseHandler
	quoteService *checkoutapp.QuoteService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(quoteService *checkoutapp.QuoteService) *CheckoutHandler {
	return &CheckoutHandler{
		quoteService: quoteService,
	}
}

// Quote prices the current cart
// @Summary Price a cart
// @Description Computes subtotal, discount, tax breakdown and grand total for a cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body checkoutapp.QuoteRequest true "Cart to price"
// @Success 200 {object} dto.Response{data=checkoutapp.QuoteResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /checkout/quote [post]
func (h *CheckoutHandler) Quote(c *gin.Context) {
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

// ValidateDiscount checks a discount code against the current cart
// @Summary Validate a discount code
// @Description Reports whether a code applies to the cart; rejections come back in the body, not as errors
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body checkoutapp.ValidateDiscountRequest true "Cart and code to check"
// @Success 200 {object} dto.Response{data=checkoutapp.DiscountValidationResponse}
// @Failure 400 {object} dto.Response
// @Router /checkout/discounts/validate [post]
func (h *CheckoutHandler) ValidateDiscount(c *gin.Context) {
	var req checkoutapp.ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quoteService.ValidateDiscount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/quote", h.Quote)
		checkout.POST("/discounts/validate", h.ValidateDiscount)
	}
}
