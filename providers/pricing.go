package providers

import "github.com/scottsen/groqqy"

// Model identifiers for the Groq inference platform.
// https://console.groq.com/docs/models
const (
	ModelLlama318BInstant    = "llama-3.1-8b-instant"
	ModelLlama3370BVersatile = "llama-3.3-70b-versatile"
	ModelLlama4Scout         = "llama-4-scout"
)

// ModelCost holds a model's USD price per one million tokens.
type ModelCost struct {
	Input  float64
	Output float64
}

// PriceTable maps model names to their token prices. Models missing
// from the table cost zero; unknown-model usage is therefore tracked
// but never billed, matching the upstream pricing behavior.
type PriceTable map[string]ModelCost

// DefaultPrices returns the published Groq prices for the models this
// package names.
func DefaultPrices() PriceTable {
	return PriceTable{
		ModelLlama318BInstant:    {Input: 0.05, Output: 0.08},
		ModelLlama3370BVersatile: {Input: 0.59, Output: 0.79},
		ModelLlama4Scout:         {Input: 0.11, Output: 0.34},
	}
}

// Cost computes the monetary cost of one call's usage under this
// table.
func (p PriceTable) Cost(model string, usage groqqy.Usage) float64 {
	c, ok := p[model]
	if !ok {
		return 0
	}
	input := float64(usage.InputTokens) / 1_000_000 * c.Input
	output := float64(usage.OutputTokens) / 1_000_000 * c.Output
	return input + output
}
