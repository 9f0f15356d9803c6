package service

import (
	"math"
	"testing"
)

func TestCalculateTokenCostKnownModel(t *testing.T) {
	cost := CalculateTokenCost("o3-mini-2025-01-31", 1_000_000, 1_000_000)

	if math.Abs(cost.PromptCost-1.10) > 1e-9 {
		t.Fatalf("PromptCost = %v, want 1.10", cost.PromptCost)
	}
	if math.Abs(cost.CompletionCost-4.40) > 1e-9 {
		t.Fatalf("CompletionCost = %v, want 4.40", cost.CompletionCost)
	}
	if math.Abs(cost.TotalCost-5.50) > 1e-9 {
		t.Fatalf("TotalCost = %v, want 5.50", cost.TotalCost)
	}
}

func TestCalculateTokenCostUnknownModelFallsBack(t *testing.T) {
	got := CalculateTokenCost("some-future-model", 500, 200)
	want := CalculateTokenCost(defaultPricingModel, 500, 200)

	if got != want {
		t.Fatalf("CalculateTokenCost(unknown) = %+v, want %+v", got, want)
	}
}

func TestCalculateTokenCostZeroUsage(t *testing.T) {
	cost := CalculateTokenCost("gpt-4o", 0, 0)
	if cost.TotalCost != 0 {
		t.Fatalf("TotalCost = %v, want 0", cost.TotalCost)
	}
}
