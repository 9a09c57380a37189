package cost

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/codescore/internal/models"
)

type PricingTable struct {
	InputPricePerMillion  float64
	OutputPricePerMillion float64
}

// ModelPricing maps a lower-case model name to its list price.
type ModelPricing map[string]PricingTable

// OpenAI-compatible gateways serve several model families, so prices are
// looked up by model name regardless of the configured provider.
var defaultPricing = ModelPricing{
	// https://ai.google.dev/gemini-api/docs/pricing
	"gemini-1.5-flash": {InputPricePerMillion: 0.075, OutputPricePerMillion: 0.30},
	"gemini-1.5-pro":   {InputPricePerMillion: 1.25, OutputPricePerMillion: 5.00},
	"gemini-2.5-flash": {InputPricePerMillion: 0.30, OutputPricePerMillion: 2.50},
	"gemini-2.5-pro":   {InputPricePerMillion: 1.25, OutputPricePerMillion: 10.00},

	"gpt-4o":      {InputPricePerMillion: 2.50, OutputPricePerMillion: 10.00},
	"gpt-4o-mini": {InputPricePerMillion: 0.15, OutputPricePerMillion: 0.60},
	"gpt-4-turbo": {InputPricePerMillion: 10.00, OutputPricePerMillion: 30.00},

	"claude-3-5-sonnet": {InputPricePerMillion: 3.00, OutputPricePerMillion: 15.00},
	"claude-3-haiku":    {InputPricePerMillion: 0.25, OutputPricePerMillion: 1.25},

	"meta-llama-3.1-8b-instruct":   {InputPricePerMillion: 0.10, OutputPricePerMillion: 0.20},
	"meta-llama-3.1-70b-instruct":  {InputPricePerMillion: 0.60, OutputPricePerMillion: 1.20},
	"meta-llama-3.1-405b-instruct": {InputPricePerMillion: 5.00, OutputPricePerMillion: 10.00},
}

type Calculator struct {
	pricing ModelPricing
}

func NewCalculator() *Calculator {
	pricing := make(ModelPricing, len(defaultPricing))
	for model, table := range defaultPricing {
		pricing[model] = table
	}
	return &Calculator{pricing: pricing}
}

// EstimateCost returns the list price in USD of one completion, or 0 when the
// model is unknown or usage was not reported.
func (c *Calculator) EstimateCost(usage *models.TokenUsage) float64 {
	if usage == nil {
		return 0
	}

	table, ok := c.lookup(usage.Model)
	if !ok {
		return 0
	}

	inputCost := (float64(usage.InputTokens) / 1_000_000) * table.InputPricePerMillion
	outputCost := (float64(usage.OutputTokens) / 1_000_000) * table.OutputPricePerMillion

	return inputCost + outputCost
}

// GetPricing returns the pricing table for an exact model name
func (c *Calculator) GetPricing(model string) (PricingTable, error) {
	table, exists := c.pricing[strings.ToLower(model)]
	if !exists {
		return PricingTable{}, fmt.Errorf("model %s not found", model)
	}
	return table, nil
}

// AddPricing registers or replaces the price of a model
func (c *Calculator) AddPricing(model string, table PricingTable) {
	c.pricing[strings.ToLower(model)] = table
}

// lookup tries an exact match first, then the longest known name contained in
// model, so "gpt-4o-mini-2024-07-18" resolves to gpt-4o-mini and not gpt-4o.
func (c *Calculator) lookup(model string) (PricingTable, bool) {
	model = strings.ToLower(model)
	if model == "" {
		return PricingTable{}, false
	}
	if table, ok := c.pricing[model]; ok {
		return table, true
	}

	best := ""
	for name := range c.pricing {
		if strings.Contains(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return PricingTable{}, false
	}
	return c.pricing[best], true
}
