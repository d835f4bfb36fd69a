package handler

import (
	billingapp "github.com/boekhoud/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles freestanding income endpoints. Payments that
// belong to an invoice are managed through the invoice routes.
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.ListUnattached)
		payments.POST("", h.RecordUnattached)
		payments.DELETE("/:id", h.DeleteUnattached)
	}
}

// ListUnattached lists income that belongs to no invoice
func (h *PaymentHandler) ListUnattached(c *gin.Context) {
	payments, err := h.paymentService.ListUnattachedPayments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// RecordUnattached records freestanding income
func (h *PaymentHandler) RecordUnattached(c *gin.Context) {
	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.RecordUnattachedPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// DeleteUnattached removes freestanding income
func (h *PaymentHandler) DeleteUnattached(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.DeleteUnattachedPayment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
