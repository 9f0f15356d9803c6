// Chat HTTP handlers for the two-phase conversation flow.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/service"
)

// ChatHandler handles the conversation endpoints.
type ChatHandler struct {
	chatService    *service.ChatService
	summaryService *service.SummaryService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, summaryService *service.SummaryService) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		summaryService: summaryService,
	}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.POST("/chat/tool-call-result", h.ToolCallResult)
	r.POST("/chat/generate-summary", h.GenerateSummary)
	r.GET("/chat/summary/:conversation_id", h.GetSummary)
}

// Chat handles one user turn.
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.HandleTurn(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ToolCallResult executes the tool calls pending in the replayed history and
// returns the final assistant reply.
// POST /api/chat/tool-call-result
func (h *ChatHandler) ToolCallResult(c *gin.Context) {
	var req models.ToolCallResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.ResolveToolCalls(c.Request.Context(), req.ConversationHistory)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingToolCall) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateSummary analyzes a conversation on demand.
// POST /api/chat/generate-summary
func (h *ChatHandler) GenerateSummary(c *gin.Context) {
	var req models.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary := h.summaryService.Summarize(c.Request.Context(), req.ConversationID, req.ConversationHistory)
	c.JSON(http.StatusOK, models.SummaryResponse{Summary: summary})
}

// GetSummary returns the stored summary for a conversation.
// GET /api/chat/summary/:conversation_id
func (h *ChatHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Param("conversation_id"))
	if err != nil {
		if errors.Is(err, service.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SummaryResponse{Summary: summary})
}
