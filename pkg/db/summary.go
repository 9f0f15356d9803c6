package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Sentiment values for a conversation summary.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Departments a conversation can be routed to.
const (
	DepartmentSales      = "Sales"
	DepartmentService    = "Service"
	DepartmentManagement = "Management"
	DepartmentHR         = "HR"
	DepartmentFinance    = "Finance"
	DepartmentParts      = "Parts"
)

// StringList is a JSON-encoded list of strings stored in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Insights holds the structured analysis attached to a summary.
type Insights struct {
	Urgency           string `json:"urgency"` // low, medium, high
	UpsellOpportunity bool   `json:"upsell_opportunity"`
	CustomerInterest  string `json:"customer_interest"`
	AdditionalNotes   string `json:"additional_notes"`
}

func (i Insights) Value() (driver.Value, error) {
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Insights) Scan(value interface{}) error {
	if value == nil {
		*i = Insights{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), i)
	case []byte:
		return json.Unmarshal(v, i)
	default:
		return fmt.Errorf("unsupported type for Insights: %T", value)
	}
}

// ConversationSummary stores the post-conversation analysis, one row per
// conversation. Rows are upserted by ConversationID and never deleted.
type ConversationSummary struct {
	ID             uint       `json:"-" gorm:"primaryKey;autoIncrement"`
	ConversationID string     `json:"conversation_id" gorm:"size:36;uniqueIndex;not null"`
	Sentiment      string     `json:"sentiment" gorm:"size:20;not null"`
	Keywords       StringList `json:"keywords" gorm:"type:text"`
	Summary        string     `json:"summary" gorm:"type:text"`
	Department     string     `json:"department" gorm:"size:20;not null"`
	Insights       Insights   `json:"insights" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (*ConversationSummary) TableName() string {
	return "conversation_summaries"
}
