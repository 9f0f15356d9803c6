package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/dealerdesk/dealerdesk/pkg/db"
	"github.com/dealerdesk/dealerdesk/pkg/models"
)

func sampleHistory() []models.Message {
	return []models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: "I'm looking for a family SUV under 30k"},
		{Role: models.RoleAssistant, Content: "The Rogue would be a great fit."},
	}
}

func TestSummarizeStoresParsedSummary(t *testing.T) {
	fake := &fakeChatModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "```json\n" + `{
			"sentiment": "Positive",
			"keywords": ["rogue", "suv", "budget"],
			"summary": "Customer wants a family SUV under 30k.",
			"department": "sales",
			"insights": {"urgency": "medium", "upsell_opportunity": true, "customer_interest": "Nissan Rogue", "additional_notes": ""}
		}` + "\n```"},
	}}
	database := openTestDB(t)
	svc := NewSummaryService(database, fake, "test-model", NewAnalyticsService(database))

	summary := svc.Summarize(context.Background(), "conv-1", sampleHistory())

	if summary.Sentiment != db.SentimentPositive {
		t.Fatalf("Sentiment = %q, want positive", summary.Sentiment)
	}
	if summary.Department != db.DepartmentSales {
		t.Fatalf("Department = %q, want Sales", summary.Department)
	}
	if len(summary.Keywords) != 3 {
		t.Fatalf("Keywords = %v, want 3 entries", summary.Keywords)
	}

	stored, err := svc.GetSummary("conv-1")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if stored.Summary != "Customer wants a family SUV under 30k." {
		t.Fatalf("stored.Summary = %q", stored.Summary)
	}
}

func TestSummarizeModelFailureYieldsDefault(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("provider unavailable")}
	database := openTestDB(t)
	svc := NewSummaryService(database, fake, "test-model", nil)

	summary := svc.Summarize(context.Background(), "conv-2", sampleHistory())

	if summary == nil {
		t.Fatal("Summarize() = nil, want default summary")
	}
	if summary.Sentiment != db.SentimentNeutral || summary.Department != db.DepartmentSales {
		t.Fatalf("default summary = %+v", summary)
	}
	if !strings.Contains(summary.Insights.AdditionalNotes, "provider unavailable") {
		t.Fatalf("AdditionalNotes = %q, want failure detail", summary.Insights.AdditionalNotes)
	}

	// The default still gets stored.
	if _, err := svc.GetSummary("conv-2"); err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
}

func TestSummarizeInvalidJSONYieldsDefault(t *testing.T) {
	fake := &fakeChatModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "The customer seemed happy overall."},
	}}
	database := openTestDB(t)
	svc := NewSummaryService(database, fake, "test-model", nil)

	summary := svc.Summarize(context.Background(), "conv-3", sampleHistory())

	if summary.Sentiment != db.SentimentNeutral {
		t.Fatalf("Sentiment = %q, want neutral default", summary.Sentiment)
	}
	if summary.Insights.AdditionalNotes == "" {
		t.Fatal("AdditionalNotes empty, want parse failure detail")
	}
}

func TestSummarizeUpsertsByConversationID(t *testing.T) {
	fake := &fakeChatModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: `{"sentiment":"neutral","keywords":[],"summary":"First pass.","department":"Sales","insights":{"urgency":"low","upsell_opportunity":false,"customer_interest":"","additional_notes":""}}`},
		{Role: schema.Assistant, Content: `{"sentiment":"negative","keywords":["complaint"],"summary":"Second pass.","department":"Service","insights":{"urgency":"high","upsell_opportunity":false,"customer_interest":"","additional_notes":""}}`},
	}}
	database := openTestDB(t)
	svc := NewSummaryService(database, fake, "test-model", nil)

	svc.Summarize(context.Background(), "conv-4", sampleHistory())
	svc.Summarize(context.Background(), "conv-4", sampleHistory())

	var count int64
	if err := database.Model(&models.ConversationSummary{}).Count(&count).Error; err != nil {
		t.Fatalf("count summaries: %v", err)
	}
	if count != 1 {
		t.Fatalf("summary rows = %d, want 1", count)
	}

	stored, err := svc.GetSummary("conv-4")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if stored.Summary != "Second pass." || stored.Department != db.DepartmentService {
		t.Fatalf("stored = %+v, want second pass to win", stored)
	}
}

func TestSummarizeGeneratesConversationID(t *testing.T) {
	fake := &fakeChatModel{}
	database := openTestDB(t)
	svc := NewSummaryService(database, fake, "test-model", nil)

	summary := svc.Summarize(context.Background(), "", sampleHistory())
	if summary.ConversationID == "" {
		t.Fatal("ConversationID empty, want generated id")
	}
}

func TestGetSummaryNotFound(t *testing.T) {
	database := openTestDB(t)
	svc := NewSummaryService(database, &fakeChatModel{}, "test-model", nil)

	_, err := svc.GetSummary("missing")
	if !errors.Is(err, ErrSummaryNotFound) {
		t.Fatalf("GetSummary() error = %v, want ErrSummaryNotFound", err)
	}
}
