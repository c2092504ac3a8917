package http

import (
	"errors"
	"net/http"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	apperrors "livevip/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public catalog feed and the admin CRUD
// routes behind it.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) SetupRoutes(router *gin.Engine, adminAuth gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/streams", h.ListStreams)

		protected := api.Group("", adminAuth)
		{
			protected.POST("/streams", h.CreateStream)
			protected.PUT("/streams", h.UpdateStream)
			protected.DELETE("/streams", h.DeleteStream)
		}
	}
}

func (h *CatalogHandler) ListStreams(c *gin.Context) {
	streams, err := h.catalog.ListStreams(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch streams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"streams": streams,
	})
}

func (h *CatalogHandler) CreateStream(c *gin.Context) {
	var req struct {
		Title          string `json:"title"`
		Thumbnail      string `json:"thumbnail"`
		VideoURL       string `json:"videoUrl"`
		StreamerName   string `json:"streamerName"`
		StreamerAvatar string `json:"streamerAvatar"`
		Category       string `json:"category"`
		ViewerCount    int    `json:"viewerCount"`
		VIPOnly        bool   `json:"isVipOnly"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stream, err := h.catalog.CreateStream(c.Request.Context(), ports.CreateStreamInput{
		Title:          req.Title,
		Thumbnail:      req.Thumbnail,
		VideoURL:       req.VideoURL,
		StreamerName:   req.StreamerName,
		StreamerAvatar: req.StreamerAvatar,
		Category:       req.Category,
		ViewerCount:    req.ViewerCount,
		VIPOnly:        req.VIPOnly,
	})
	if err != nil {
		if appErr := apperrors.FromError(err); appErr != nil {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stream"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stream": stream,
	})
}

func (h *CatalogHandler) UpdateStream(c *gin.Context) {
	var req struct {
		ID             string  `json:"id"`
		Title          *string `json:"title"`
		Thumbnail      *string `json:"thumbnail"`
		VideoURL       *string `json:"videoUrl"`
		StreamerName   *string `json:"streamerName"`
		StreamerAvatar *string `json:"streamerAvatar"`
		Category       *string `json:"category"`
		ViewerCount    *int    `json:"viewerCount"`
		VIPOnly        *bool   `json:"isVipOnly"`
		Live           *bool   `json:"isLive"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stream ID is required"})
		return
	}

	stream, err := h.catalog.UpdateStream(c.Request.Context(), domain.StreamID(req.ID), ports.UpdateStreamInput{
		Title:          req.Title,
		Thumbnail:      req.Thumbnail,
		VideoURL:       req.VideoURL,
		StreamerName:   req.StreamerName,
		StreamerAvatar: req.StreamerAvatar,
		Category:       req.Category,
		ViewerCount:    req.ViewerCount,
		VIPOnly:        req.VIPOnly,
		Live:           req.Live,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStreamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stream not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stream"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stream": stream,
	})
}

func (h *CatalogHandler) DeleteStream(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stream ID is required"})
		return
	}

	if err := h.catalog.DeleteStream(c.Request.Context(), domain.StreamID(id)); err != nil {
		if errors.Is(err, domain.ErrStreamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stream not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stream"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
