package service

import (
	"github.com/cloudwego/eino/schema"

	"github.com/dealerdesk/dealerdesk/pkg/models"
)

// toSchemaMessages converts the caller-held history into eino messages for
// the model call. Order is preserved; tool-call and tool-result structure is
// carried through untouched.
func toSchemaMessages(history []models.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		sm := &schema.Message{
			Role:    schema.RoleType(msg.Role),
			Content: msg.Content,
		}
		if msg.ToolCallID != "" {
			sm.ToolCallID = msg.ToolCallID
		}
		for _, tc := range msg.ToolCalls {
			sm.ToolCalls = append(sm.ToolCalls, schema.ToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: schema.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		out = append(out, sm)
	}
	return out
}

// toolCallsFromSchema converts the model's tool call requests to the wire
// shape echoed back to the caller.
func toolCallsFromSchema(calls []schema.ToolCall) []models.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]models.ToolCall, 0, len(calls))
	for _, tc := range calls {
		callType := tc.Type
		if callType == "" {
			callType = "function"
		}
		out = append(out, models.ToolCall{
			ID:   tc.ID,
			Type: callType,
			Function: models.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return out
}

// usageFromResponse extracts token usage from a model response, tolerating
// providers that omit it.
func usageFromResponse(resp *schema.Message) models.TokenUsage {
	if resp == nil || resp.ResponseMeta == nil || resp.ResponseMeta.Usage == nil {
		return models.TokenUsage{}
	}
	u := resp.ResponseMeta.Usage
	return models.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
