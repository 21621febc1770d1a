package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"popflix/middleware"
	"popflix/services"
)

type PaymentsHandler struct {
	payments *services.Payments
}

func NewPaymentsHandler(payments *services.Payments) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

func (h *PaymentsHandler) CreateCheckout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		PackageID string `json:"package_id"`
		OriginURL string `json:"origin_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	checkout, err := h.payments.CreateCheckout(c.Request.Context(), user, req.PackageID, req.OriginURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingOrigin):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Origin URL required"})
		case errors.Is(err, services.ErrUnknownPackage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package"})
		case errors.Is(err, services.ErrUpstreamFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, checkout)
}

func (h *PaymentsHandler) Status(c *gin.Context) {
	sessionID := c.Param("session_id")

	status, err := h.payments.PollStatus(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, services.ErrUpstreamFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// StripeWebhook takes the raw body plus Stripe-Signature header; signature
// verification happens before any of the payload is trusted.
func (h *PaymentsHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.payments.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
