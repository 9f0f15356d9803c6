package event

// Event names.
const (
	AnalyticsUpdated = "analytics.updated"
	SummaryUpserted  = "summary.upserted"
)

// AnalyticsUpdatedEvent is emitted after each stored LLM call so live
// dashboards can refresh without polling. Summary carries the fresh
// aggregate (same shape as GET /api/analytics/summary).
type AnalyticsUpdatedEvent struct {
	Summary any `json:"summary"`
}

func (e AnalyticsUpdatedEvent) EventName() string { return AnalyticsUpdated }

// SummaryUpsertedEvent is emitted when a conversation summary is written.
type SummaryUpsertedEvent struct {
	ConversationID string `json:"conversation_id"`
	Sentiment      string `json:"sentiment"`
	Department     string `json:"department"`
}

func (e SummaryUpsertedEvent) EventName() string { return SummaryUpserted }
