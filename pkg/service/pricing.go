package service

import "github.com/dealerdesk/dealerdesk/pkg/models"

// modelPricing holds cost in USD per million tokens.
type modelPricing struct {
	PromptPerMillion     float64
	CompletionPerMillion float64
}

// pricingTable maps a model name to its token pricing. Unknown models fall
// back to defaultPricingModel.
var pricingTable = map[string]modelPricing{
	"o3-mini-2025-01-31": {PromptPerMillion: 1.10, CompletionPerMillion: 4.40},
	"o3-mini":            {PromptPerMillion: 1.10, CompletionPerMillion: 4.40},
	"gpt-4o":             {PromptPerMillion: 2.50, CompletionPerMillion: 10.00},
	"gpt-4o-mini":        {PromptPerMillion: 0.15, CompletionPerMillion: 0.60},
	"gpt-4.1":            {PromptPerMillion: 2.00, CompletionPerMillion: 8.00},
	"gpt-4.1-mini":       {PromptPerMillion: 0.40, CompletionPerMillion: 1.60},
}

const defaultPricingModel = "o3-mini-2025-01-31"

// CalculateTokenCost computes the dollar cost of one LLM call from its token
// usage. Pure function; flat per-token pricing only.
func CalculateTokenCost(model string, promptTokens, completionTokens int) models.CostInfo {
	pricing, ok := pricingTable[model]
	if !ok {
		pricing = pricingTable[defaultPricingModel]
	}

	promptCost := float64(promptTokens) * pricing.PromptPerMillion / 1e6
	completionCost := float64(completionTokens) * pricing.CompletionPerMillion / 1e6

	return models.CostInfo{
		PromptCost:     promptCost,
		CompletionCost: completionCost,
		TotalCost:      promptCost + completionCost,
	}
}
