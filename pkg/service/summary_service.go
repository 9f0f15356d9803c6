package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dealerdesk/dealerdesk/pkg/db"
	"github.com/dealerdesk/dealerdesk/pkg/event"
	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

// ErrSummaryNotFound is returned when no summary exists for a conversation.
var ErrSummaryNotFound = errors.New("summary not found")

// SummaryService generates and stores post-conversation analyses. A summary
// is always produced: when the model call or its output parsing fails the
// caller still receives a neutral default with the failure noted.
type SummaryService struct {
	database  *gorm.DB
	chatModel model.BaseChatModel
	modelName string
	analytics *AnalyticsService
	logger    *slog.Logger
}

func NewSummaryService(database *gorm.DB, chatModel model.BaseChatModel, modelName string, analytics *AnalyticsService) *SummaryService {
	return &SummaryService{
		database:  database,
		chatModel: chatModel,
		modelName: modelName,
		analytics: analytics,
		logger:    utils.GetLogger().With("service", "summary"),
	}
}

// summaryPayload is the JSON shape the model is instructed to emit.
type summaryPayload struct {
	Sentiment  string          `json:"sentiment"`
	Keywords   []string        `json:"keywords"`
	Summary    string          `json:"summary"`
	Department string          `json:"department"`
	Insights   models.Insights `json:"insights"`
}

// Summarize analyzes the conversation and upserts the result keyed by
// conversationID, generating an id when the caller has none. It never
// returns nil.
func (s *SummaryService) Summarize(ctx context.Context, conversationID string, history []models.Message) *models.ConversationSummary {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	summary := s.generate(ctx, conversationID, history)

	if err := s.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}},
		UpdateAll: true,
	}).Create(summary).Error; err != nil {
		s.logger.Error("failed to store conversation summary",
			"conversation_id", conversationID, "error", err)
	} else {
		event.Global().Emit(event.SummaryUpsertedEvent{
			ConversationID: conversationID,
			Sentiment:      summary.Sentiment,
			Department:     summary.Department,
		})
	}

	return summary
}

// GetSummary loads the stored summary for a conversation.
func (s *SummaryService) GetSummary(conversationID string) (*models.ConversationSummary, error) {
	var summary models.ConversationSummary
	err := s.database.Where("conversation_id = ?", conversationID).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load summary: %w", err)
	}
	return &summary, nil
}

func (s *SummaryService) generate(ctx context.Context, conversationID string, history []models.Message) *models.ConversationSummary {
	transcript := buildTranscript(history)
	if transcript == "" {
		return defaultSummary(conversationID, "conversation transcript was empty")
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(summaryInstruction),
		schema.UserMessage(transcript),
	})
	if err != nil {
		s.logger.Error("summary generation failed", "conversation_id", conversationID, "error", err)
		return defaultSummary(conversationID, fmt.Sprintf("summary generation failed: %v", err))
	}

	usage := usageFromResponse(resp)
	cost := CalculateTokenCost(s.modelName, usage.PromptTokens, usage.CompletionTokens)
	if s.analytics != nil {
		if err := s.analytics.Store(s.modelName, usage, cost); err != nil {
			s.logger.Error("failed to store analytics record", "error", err)
		}
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &payload); err != nil {
		s.logger.Error("summary output was not valid JSON",
			"conversation_id", conversationID, "error", err)
		return defaultSummary(conversationID, fmt.Sprintf("could not parse summary output: %v", err))
	}

	return &models.ConversationSummary{
		ConversationID: conversationID,
		Sentiment:      normalizeSentiment(payload.Sentiment),
		Keywords:       db.StringList(payload.Keywords),
		Summary:        payload.Summary,
		Department:     normalizeDepartment(payload.Department),
		Insights:       payload.Insights,
	}
}

// buildTranscript renders the history as plain dialogue. System messages,
// tool results and the tool-call placeholder are left out so the analysis
// only sees what the customer saw.
func buildTranscript(history []models.Message) string {
	var b strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case models.RoleUser:
			fmt.Fprintf(&b, "Customer: %s\n", msg.Content)
		case models.RoleAssistant:
			if len(msg.ToolCalls) > 0 || msg.Content == toolCallPlaceholder {
				continue
			}
			fmt.Fprintf(&b, "Agent: %s\n", msg.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFence tolerates models that wrap JSON in markdown fences.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func normalizeSentiment(sentiment string) string {
	switch strings.ToLower(strings.TrimSpace(sentiment)) {
	case db.SentimentPositive:
		return db.SentimentPositive
	case db.SentimentNegative:
		return db.SentimentNegative
	default:
		return db.SentimentNeutral
	}
}

func normalizeDepartment(department string) string {
	for _, d := range []string{
		db.DepartmentSales, db.DepartmentService, db.DepartmentManagement,
		db.DepartmentHR, db.DepartmentFinance, db.DepartmentParts,
	} {
		if strings.EqualFold(strings.TrimSpace(department), d) {
			return d
		}
	}
	return db.DepartmentSales
}

func defaultSummary(conversationID, note string) *models.ConversationSummary {
	return &models.ConversationSummary{
		ConversationID: conversationID,
		Sentiment:      db.SentimentNeutral,
		Keywords:       db.StringList{},
		Summary:        "Summary unavailable.",
		Department:     db.DepartmentSales,
		Insights: models.Insights{
			Urgency:         "low",
			AdditionalNotes: note,
		},
	}
}
