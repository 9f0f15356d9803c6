package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/tools"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

var (
	// ErrEmptyMessage is returned when a chat turn arrives without text.
	ErrEmptyMessage = errors.New("user message must not be empty")

	// ErrNoPendingToolCall is returned when tool-call resolution is requested
	// but the history holds no assistant message awaiting tool execution.
	ErrNoPendingToolCall = errors.New("no pending tool call in conversation history")
)

// reviewKeywords route legacy placeholder histories, which carry no
// structured tool calls, toward the review-video tool.
var reviewKeywords = []string{"review", "reviews", "video", "videos", "watch", "see", "look at"}

// ChatService drives the two-phase conversation loop: a model call that may
// request tools, then a follow-up call that folds the tool results back into
// the conversation.
type ChatService struct {
	chatModel model.ToolCallingChatModel
	modelName string
	toolCtx   *tools.ToolContext
	summaries *SummaryService
	analytics *AnalyticsService
	logger    *slog.Logger

	now func() time.Time
	loc *time.Location
}

// NewChatService wires the orchestrator. It fails fast when either built-in
// tool is missing from the registry, which would otherwise surface as a
// runtime dispatch error mid-conversation.
func NewChatService(chatModel model.ToolCallingChatModel, modelName string, toolCtx *tools.ToolContext, summaries *SummaryService, analytics *AnalyticsService) (*ChatService, error) {
	for _, name := range []string{tools.FetchCars, tools.FindCarReviewVideos} {
		if !tools.IsRegistered(name) {
			return nil, fmt.Errorf("required tool %q is not registered", name)
		}
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}

	return &ChatService{
		chatModel: chatModel,
		modelName: modelName,
		toolCtx:   toolCtx,
		summaries: summaries,
		analytics: analytics,
		logger:    utils.GetLogger().With("service", "chat"),
		now:       time.Now,
		loc:       loc,
	}, nil
}

// HandleTurn processes one user turn. When the model requests tools the
// returned history ends with a placeholder assistant message carrying the
// structured tool calls, and the caller is expected to follow up with
// ResolveToolCalls.
func (s *ChatService) HandleTurn(ctx context.Context, userMessage string, history []models.Message) (*models.ChatResponse, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, ErrEmptyMessage
	}

	history = s.ensurePersona(history)
	history = s.ensureTimeContext(history)
	history = appendUserMessage(history, userMessage)

	resp, err := s.generateWithTools(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	usage := usageFromResponse(resp)
	cost := CalculateTokenCost(s.modelName, usage.PromptTokens, usage.CompletionTokens)
	s.recordAnalytics(usage, cost)

	if len(resp.ToolCalls) > 0 {
		history = append(history, models.Message{
			Role:      models.RoleAssistant,
			Content:   toolCallPlaceholder,
			ToolCalls: toolCallsFromSchema(resp.ToolCalls),
		})
		return &models.ChatResponse{
			ChatResponse:        toolCallPlaceholder,
			ConversationHistory: history,
			ToolCallDetected:    true,
			TokenUsage:          usage,
			Cost:                cost,
		}, nil
	}

	history = append(history, models.Message{Role: models.RoleAssistant, Content: resp.Content})

	var summary *models.ConversationSummary
	if DetectEndOfConversation(history) {
		summary = s.summaries.Summarize(ctx, "", history)
	}

	return &models.ChatResponse{
		ChatResponse:        resp.Content,
		ConversationHistory: history,
		Summary:             summary,
		TokenUsage:          usage,
		Cost:                cost,
	}, nil
}

// ResolveToolCalls executes the tool calls pending in the replayed history,
// appends their results, and asks the model for the final reply. Tool
// failures never abort the turn; they are reported back to the model as
// error payloads in the tool result.
func (s *ChatService) ResolveToolCalls(ctx context.Context, history []models.Message) (*models.ToolCallResultResponse, error) {
	calls, err := s.pendingToolCalls(history)
	if err != nil {
		return nil, err
	}

	for _, call := range calls {
		result := s.runTool(ctx, call)
		history = append(history, models.Message{
			Role:       models.RoleTool,
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	// The follow-up call runs without tools so the model must answer in
	// prose instead of chaining further tool requests.
	resp, err := s.chatModel.Generate(ctx, toSchemaMessages(history))
	if err != nil {
		return nil, fmt.Errorf("chat completion after tool execution: %w", err)
	}

	usage := usageFromResponse(resp)
	cost := CalculateTokenCost(s.modelName, usage.PromptTokens, usage.CompletionTokens)
	s.recordAnalytics(usage, cost)

	history = append(history, models.Message{Role: models.RoleAssistant, Content: resp.Content})

	var summary *models.ConversationSummary
	if DetectEndOfConversation(history) {
		summary = s.summaries.Summarize(ctx, "", history)
	}

	return &models.ToolCallResultResponse{
		FinalResponse:            resp.Content,
		FinalConversationHistory: history,
		Summary:                  summary,
		TokenUsage:               usage,
		Cost:                     cost,
	}, nil
}

// ========== Internals ==========

func (s *ChatService) generateWithTools(ctx context.Context, history []models.Message) (*schema.Message, error) {
	all := tools.GetAllTools(s.toolCtx)
	infos := make([]*schema.ToolInfo, 0, len(all))
	for _, t := range all {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}

	bound, err := s.chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}

	return bound.Generate(ctx, toSchemaMessages(history))
}

// ensurePersona prepends the system prompt unless a replayed history already
// carries it.
func (s *ChatService) ensurePersona(history []models.Message) []models.Message {
	for _, msg := range history {
		if msg.Role == models.RoleSystem && strings.Contains(msg.Content, personaMarker) {
			return history
		}
	}
	return append([]models.Message{{Role: models.RoleSystem, Content: systemPrompt}}, history...)
}

// ensureTimeContext appends a wall-clock marker in dealership-local time.
func (s *ChatService) ensureTimeContext(history []models.Message) []models.Message {
	for _, msg := range history {
		if msg.Role == models.RoleSystem && strings.Contains(msg.Content, timeContextPrefix) {
			return history
		}
	}
	stamp := s.now().In(s.loc).Format("2006-01-02 15:04:05")
	return append(history, models.Message{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf("%s %s EST", timeContextPrefix, stamp),
	})
}

// appendUserMessage adds the turn's text. Clients that already mirrored the
// message into the history they replay are tolerated.
func appendUserMessage(history []models.Message, userMessage string) []models.Message {
	if n := len(history); n > 0 {
		last := history[n-1]
		if last.Role == models.RoleUser && last.Content == userMessage {
			return history
		}
	}
	return append(history, models.Message{Role: models.RoleUser, Content: userMessage})
}

// pendingToolCalls finds the most recent assistant message with structured
// tool calls. Histories from older clients may only carry the placeholder
// text; for those the target tool is guessed from the last user message.
func (s *ChatService) pendingToolCalls(history []models.Message) ([]models.ToolCall, error) {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != models.RoleAssistant {
			continue
		}
		if len(msg.ToolCalls) > 0 {
			return msg.ToolCalls, nil
		}
		if msg.Content == toolCallPlaceholder {
			return []models.ToolCall{s.legacyToolCall(history)}, nil
		}
	}
	return nil, ErrNoPendingToolCall
}

func (s *ChatService) legacyToolCall(history []models.Message) models.ToolCall {
	var lastUser string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			lastUser = strings.ToLower(history[i].Content)
			break
		}
	}

	name := tools.FetchCars
	args := `{"make":"Nissan","model":"","year":-1,"max_year":-1,"price":-1,"max_price":-1,"mileage":-1,"color":"","stock_number":"","vin":""}`
	for _, kw := range reviewKeywords {
		if strings.Contains(lastUser, kw) {
			name = tools.FindCarReviewVideos
			args = `{"car_make":"Nissan","car_model":"Kicks","year":2025}`
			break
		}
	}

	s.logger.Warn("history has placeholder without structured tool calls, guessing tool",
		"tool", name)

	return models.ToolCall{
		ID:       uuid.NewString(),
		Type:     "function",
		Function: models.FunctionCall{Name: name, Arguments: args},
	}
}

// runTool executes one tool call. Unknown tools, malformed arguments and
// execution failures all degrade into an error payload the model can read.
func (s *ChatService) runTool(ctx context.Context, call models.ToolCall) string {
	name := call.Function.Name
	args := call.Function.Arguments

	tl, err := tools.GetTool(name, s.toolCtx)
	if err != nil {
		s.logger.Warn("model requested unknown tool", "tool", name)
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}

	if !json.Valid([]byte(args)) {
		s.logger.Warn("model sent malformed tool arguments", "tool", name)
		return errorResult(fmt.Sprintf("invalid arguments for %s", name))
	}

	out, err := tl.InvokableRun(ctx, args)
	if err != nil {
		s.logger.Error("tool execution failed", "tool", name, "error", err)
		return errorResult(fmt.Sprintf("tool %s failed: %v", name, err))
	}
	return out
}

func (s *ChatService) recordAnalytics(usage models.TokenUsage, cost models.CostInfo) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.Store(s.modelName, usage, cost); err != nil {
		s.logger.Error("failed to store analytics record", "error", err)
	}
}

func errorResult(msg string) string {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	return string(payload)
}
