package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/service"
)

// InventoryHandler exposes the car inventory and review-video lookups.
type InventoryHandler struct {
	inventory *service.InventoryService
	videos    service.VideoSearcher
}

func NewInventoryHandler(inventory *service.InventoryService, videos service.VideoSearcher) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		videos:    videos,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/inventory", h.List)
	r.POST("/inventory/search", h.Search)
	r.POST("/inventory/review-videos", h.ReviewVideos)
}

// List returns the full inventory.
// GET /api/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	cars, err := h.inventory.ListInventory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars, "count": len(cars)})
}

// Search filters the inventory. Fields omitted from the body are treated as
// unconstrained.
// POST /api/inventory/search
func (h *InventoryHandler) Search(c *gin.Context) {
	filter := models.NewCarFilter()
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cars, err := h.inventory.SearchCars(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars, "count": len(cars)})
}

// ReviewVideos looks up YouTube review videos for a car. Lookup failures are
// reported inside the payload, matching the tool behavior.
// POST /api/inventory/review-videos
func (h *InventoryHandler) ReviewVideos(c *gin.Context) {
	var req models.ReviewVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.videos.Search(c.Request.Context(), req.CarMake, req.CarModel, req.Year)
	c.JSON(http.StatusOK, result)
}
