package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/service"
)

// AnalyticsHandler exposes usage recording and the dashboard aggregate.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	modelName string
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, modelName string) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		modelName: modelName,
	}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analytics/store", h.Store)
	r.GET("/analytics/summary", h.Summary)
}

// Store records caller-computed usage and cost for one LLM call.
// POST /api/analytics/store
func (h *AnalyticsHandler) Store(c *gin.Context) {
	var req models.AnalyticsStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modelName := req.Model
	if modelName == "" {
		modelName = h.modelName
	}

	if err := h.analytics.Store(modelName, req.TokenUsage, req.Cost); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Summary returns the aggregate usage view.
// GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analytics.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
