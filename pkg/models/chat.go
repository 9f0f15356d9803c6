// API types for the chat endpoints. Message mirrors the OpenAI wire shape so
// callers can replay the history verbatim on every turn.
package models

import (
	"github.com/dealerdesk/dealerdesk/pkg/db"
)

// ========== Type aliases for database types ==========

type ConversationSummary = db.ConversationSummary
type Insights = db.Insights

// ========== Message roles (OpenAI standard) ==========

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// ========== Conversation wire types ==========

// Message represents a message in the conversation history.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant messages requesting tool execution
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool result messages
}

// ToolCall represents a tool call request in OpenAI format.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
// Arguments come from the LLM and are untrusted; parse defensively.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// TokenUsage represents token usage for one LLM call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CostInfo represents the dollar cost for one LLM call.
type CostInfo struct {
	PromptCost     float64 `json:"prompt_cost"`
	CompletionCost float64 `json:"completion_cost"`
	TotalCost      float64 `json:"total_cost"`
}

// ========== Request / response DTOs ==========

// ChatRequest submits one user turn with the caller-held history.
type ChatRequest struct {
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversation_history"`
}

// ChatResponse returns the assistant reply and the augmented history the
// caller must send back on the next turn.
type ChatResponse struct {
	ChatResponse        string               `json:"chat_response"`
	ConversationHistory []Message            `json:"conversation_history"`
	ToolCallDetected    bool                 `json:"tool_call_detected"`
	Summary             *ConversationSummary `json:"summary,omitempty"`
	TokenUsage          TokenUsage           `json:"token_usage"`
	Cost                CostInfo             `json:"cost"`
}

// ToolCallResultRequest asks the server to execute the pending tool calls in
// the replayed history.
type ToolCallResultRequest struct {
	ConversationHistory []Message `json:"conversation_history"`
}

// ToolCallResultResponse returns the final assistant reply after tool
// execution.
type ToolCallResultResponse struct {
	FinalResponse            string               `json:"final_response"`
	FinalConversationHistory []Message            `json:"final_conversation_history"`
	Summary                  *ConversationSummary `json:"summary,omitempty"`
	TokenUsage               TokenUsage           `json:"token_usage"`
	Cost                     CostInfo             `json:"cost"`
}

// GenerateSummaryRequest explicitly requests a conversation summary.
type GenerateSummaryRequest struct {
	ConversationHistory []Message `json:"conversation_history"`
	ConversationID      string    `json:"conversation_id,omitempty"`
}

// SummaryResponse wraps a stored or freshly generated summary.
type SummaryResponse struct {
	Summary *ConversationSummary `json:"summary"`
}
