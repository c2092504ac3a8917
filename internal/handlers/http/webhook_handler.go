package http

import (
	"net/http"
	"time"

	"livevip/internal/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler ingests payment notifications from the billing
// provider and applies them to viewer accounts.
type WebhookHandler struct {
	accounts *services.AccountService
	secret   string
	logger   *zap.SugaredLogger
}

func NewWebhookHandler(accounts *services.AccountService, secret string, logger *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{
		accounts: accounts,
		secret:   secret,
		logger:   logger,
	}
}

func (h *WebhookHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/api/webhooks/payment", h.HandlePayment)
}

func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	if h.secret != "" && c.GetHeader("X-Webhook-Token") != h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook token"})
		return
	}

	var req struct {
		OrderID  string  `json:"orderId"`
		Email    string  `json:"email"`
		PlanType string  `json:"planType"`
		Amount   float64 `json:"amount"`
		Status   string  `json:"status"`
		// ISO timestamp; missing means 30 days from now.
		ValidUntil *time.Time `json:"validUntil"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrderID == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and email are required"})
		return
	}

	validUntil := time.Now().Add(30 * 24 * time.Hour)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	err := h.accounts.ApplyPayment(c.Request.Context(), services.PaymentOrder{
		OrderID:    req.OrderID,
		Email:      req.Email,
		PlanType:   req.PlanType,
		Amount:     req.Amount,
		Status:     req.Status,
		ValidUntil: validUntil,
	})
	if err != nil {
		h.logger.Errorw("payment webhook failed", "order_id", req.OrderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
