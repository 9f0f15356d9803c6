package service

import (
	"testing"

	"github.com/dealerdesk/dealerdesk/pkg/models"
)

func TestDetectEndOfConversationShortHistory(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "Goodbye"},
		{Role: models.RoleAssistant, Content: "Goodbye! Have a great day!"},
	}
	if DetectEndOfConversation(history) {
		t.Fatal("DetectEndOfConversation() = true for a two-message history, want false")
	}
}

func TestDetectEndOfConversationClosingPhrase(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: "Thanks for the help!"},
		{Role: models.RoleAssistant, Content: "Thank you for chatting with me today. Have a great day!"},
	}
	if !DetectEndOfConversation(history) {
		t.Fatal("DetectEndOfConversation() = false, want true")
	}
}

func TestDetectEndOfConversationIgnoresUserFarewell(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleAssistant, Content: "The Kicks starts at $21,000."},
		{Role: models.RoleUser, Content: "goodbye"},
	}
	if DetectEndOfConversation(history) {
		t.Fatal("DetectEndOfConversation() = true from a user farewell, want false")
	}
}

func TestDetectEndOfConversationOutsideWindow(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleAssistant, Content: "Have a great day!"},
		{Role: models.RoleUser, Content: "Actually, one more question"},
		{Role: models.RoleAssistant, Content: "Of course."},
		{Role: models.RoleUser, Content: "What colors does the Rogue come in?"},
		{Role: models.RoleAssistant, Content: "White, black, red and gray."},
		{Role: models.RoleUser, Content: "Nice"},
		{Role: models.RoleAssistant, Content: "Anything specific you want to know?"},
	}
	if DetectEndOfConversation(history) {
		t.Fatal("DetectEndOfConversation() = true from a farewell outside the window, want false")
	}
}
