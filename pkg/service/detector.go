package service

import (
	"strings"

	"github.com/dealerdesk/dealerdesk/pkg/models"
)

// closingPhrases is the lexicon the end-of-conversation detector matches
// against assistant turns. Matching is case-insensitive substring; first
// match wins.
var closingPhrases = []string{
	"goodbye",
	"good bye",
	"have a great day",
	"have a wonderful day",
	"have a nice day",
	"thank you for chatting",
	"thanks for chatting",
	"glad i could help",
	"anything else i can help",
	"feel free to reach out",
	"we look forward to seeing you",
}

// detectorWindow is how many trailing messages the detector inspects.
const detectorWindow = 5

// DetectEndOfConversation reports whether the conversation appears to be
// wrapping up. Histories shorter than 3 messages never count as ended.
// Only assistant-authored messages within the last 5 are considered, most
// recent first.
func DetectEndOfConversation(history []models.Message) bool {
	if len(history) < 3 {
		return false
	}

	start := len(history) - detectorWindow
	if start < 0 {
		start = 0
	}

	for i := len(history) - 1; i >= start; i-- {
		msg := history[i]
		if msg.Role != models.RoleAssistant || msg.Content == "" {
			continue
		}
		content := strings.ToLower(msg.Content)
		for _, phrase := range closingPhrases {
			if strings.Contains(content, phrase) {
				return true
			}
		}
	}

	return false
}
