package service

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk/pkg/db"
	"github.com/dealerdesk/dealerdesk/pkg/event"
	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

const recentRequestLimit = 10

// AnalyticsService records per-call token usage and serves the aggregate
// view the dashboard renders. Every successful store emits an
// analytics.updated event with the refreshed aggregate.
type AnalyticsService struct {
	database *gorm.DB
	logger   *slog.Logger
	now      func() time.Time
}

func NewAnalyticsService(database *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		database: database,
		logger:   utils.GetLogger().With("service", "analytics"),
		now:      time.Now,
	}
}

// Store appends one usage record. Cost figures are taken as given; the
// caller computed them against its own pricing table.
func (s *AnalyticsService) Store(model string, usage models.TokenUsage, cost models.CostInfo) error {
	record := db.AnalyticsRecord{
		Date:             s.now(),
		Model:            model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		PromptCost:       cost.PromptCost,
		CompletionCost:   cost.CompletionCost,
		TotalCost:        cost.TotalCost,
	}
	if err := s.database.Create(&record).Error; err != nil {
		return fmt.Errorf("store analytics record: %w", err)
	}

	summary, err := s.Summary()
	if err != nil {
		s.logger.Error("failed to build analytics summary for event", "error", err)
		return nil
	}
	event.Global().Emit(event.AnalyticsUpdatedEvent{Summary: summary})

	return nil
}

// Summary aggregates all stored records into the dashboard shape.
func (s *AnalyticsService) Summary() (*models.AnalyticsSummary, error) {
	var totals struct {
		TotalCost     float64
		TotalRequests int64
		TotalSent     int64
		TotalReceived int64
	}
	err := s.database.Model(&db.AnalyticsRecord{}).
		Select("COALESCE(SUM(total_cost), 0) AS total_cost, COUNT(*) AS total_requests, COALESCE(SUM(prompt_tokens), 0) AS total_sent, COALESCE(SUM(completion_tokens), 0) AS total_received").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate analytics totals: %w", err)
	}

	var recent []db.AnalyticsRecord
	if err := s.database.Order("date DESC, id DESC").Limit(recentRequestLimit).Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("load recent analytics records: %w", err)
	}
	entries := make([]models.AnalyticsRequestEntry, 0, len(recent))
	for _, r := range recent {
		entries = append(entries, models.AnalyticsRequestEntry{
			Date:           r.Date.Format("2006-01-02 15:04:05"),
			Model:          r.Model,
			SentTokens:     r.PromptTokens,
			ReceivedTokens: r.CompletionTokens,
			Cost:           r.TotalCost,
		})
	}

	var perModel []struct {
		Model string
		Cost  float64
	}
	err = s.database.Model(&db.AnalyticsRecord{}).
		Select("model, COALESCE(SUM(total_cost), 0) AS cost").
		Group("model").
		Scan(&perModel).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate analytics by model: %w", err)
	}
	costByModel := make(map[string]float64, len(perModel))
	for _, m := range perModel {
		costByModel[m.Model] = m.Cost
	}

	summary := &models.AnalyticsSummary{
		TotalCost:           totals.TotalCost,
		TotalRequests:       totals.TotalRequests,
		TotalSentTokens:     totals.TotalSent,
		TotalReceivedTokens: totals.TotalReceived,
		RequestsByDate:      entries,
		CostByModel:         costByModel,
	}
	if totals.TotalRequests > 0 {
		summary.AverageCostPerRequest = totals.TotalCost / float64(totals.TotalRequests)
	}
	return summary, nil
}
