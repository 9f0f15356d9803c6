package db

import "time"

// AnalyticsRecord stores token usage and cost for one completed LLM call.
// Rows are append-only; they are never updated or deleted.
type AnalyticsRecord struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date             time.Time `json:"date" gorm:"index;not null"`
	Model            string    `json:"model" gorm:"size:100;not null;index"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	PromptCost       float64   `json:"prompt_cost"`
	CompletionCost   float64   `json:"completion_cost"`
	TotalCost        float64   `json:"total_cost"`
}

func (*AnalyticsRecord) TableName() string {
	return "analytics_data"
}
