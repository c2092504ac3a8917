package http

import (
	"net/http"

	"livevip/internal/core/services"

	"github.com/gin-gonic/gin"
)

// UserHandler answers premium entitlement checks from viewer clients.
type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/api/user/premium", h.CheckPremium)
}

func (h *UserHandler) CheckPremium(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	ent, err := h.accounts.CheckPremium(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check premium status"})
		return
	}

	resp := gin.H{
		"isPremium": ent.Premium,
	}
	if ent.PremiumUntil != nil {
		resp["premiumUntil"] = ent.PremiumUntil
	}
	if ent.Name != "" {
		resp["user"] = gin.H{"name": ent.Name}
	}
	c.JSON(http.StatusOK, resp)
}
