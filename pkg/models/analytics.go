package models

import "github.com/dealerdesk/dealerdesk/pkg/db"

type AnalyticsRecord = db.AnalyticsRecord

// AnalyticsStoreRequest stores caller-computed usage and cost for one LLM
// call. Totals are trusted as supplied; see the analytics service for the
// recording semantics.
type AnalyticsStoreRequest struct {
	TokenUsage TokenUsage `json:"token_usage"`
	Cost       CostInfo   `json:"cost"`
	Model      string     `json:"model,omitempty"`
}

// AnalyticsRequestEntry is one recent request in the analytics summary.
// Field names match what the dashboard consumes.
type AnalyticsRequestEntry struct {
	Date           string  `json:"date"`
	Model          string  `json:"model"`
	SentTokens     int     `json:"sentTokens"`
	ReceivedTokens int     `json:"receivedTokens"`
	Cost           float64 `json:"cost"`
}

// AnalyticsSummary aggregates all recorded LLM calls.
type AnalyticsSummary struct {
	TotalCost             float64                 `json:"totalCost"`
	TotalRequests         int64                   `json:"totalRequests"`
	AverageCostPerRequest float64                 `json:"averageCostPerRequest"`
	TotalSentTokens       int64                   `json:"totalSentTokens"`
	TotalReceivedTokens   int64                   `json:"totalReceivedTokens"`
	RequestsByDate        []AnalyticsRequestEntry `json:"requestsByDate"`
	CostByModel           map[string]float64      `json:"costByModel"`
}
