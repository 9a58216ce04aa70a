// Package cost estimates the USD cost of model and search provider calls.
package cost

import "strings"

// Rates holds per-provider pricing configuration.
type Rates struct {
	Models map[string]ModelRate `yaml:"models" mapstructure:"models"`
	Serper SearchRate           `yaml:"serper" mapstructure:"serper"`
	Jina   SearchRate           `yaml:"jina" mapstructure:"jina"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// SearchRate holds flat per-query search pricing.
type SearchRate struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Completion computes the cost of one completion. Dated model names such as
// "gpt-4o-mini-2024-07-18" fall back to the longest priced prefix. Unknown
// models cost 0.
func (c *Calculator) Completion(model string, input, output int64) float64 {
	rate, ok := c.lookup(model)
	if !ok {
		return 0
	}
	return (float64(input)/1e6)*rate.Input + (float64(output)/1e6)*rate.Output
}

func (c *Calculator) lookup(model string) (ModelRate, bool) {
	if rate, ok := c.rates.Models[model]; ok {
		return rate, true
	}
	var best string
	for name := range c.rates.Models {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return ModelRate{}, false
	}
	return c.rates.Models[best], true
}

// SearchQuery returns the flat cost of one query for the named provider.
func (c *Calculator) SearchQuery(provider string) float64 {
	switch provider {
	case "serper":
		return c.rates.Serper.PerQuery
	case "jina":
		return c.rates.Jina.PerQuery
	default:
		return 0
	}
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"gpt-4o-mini":                {Input: 0.15, Output: 0.60},
			"gpt-4o":                     {Input: 2.50, Output: 10.00},
			"gpt-4.1-mini":               {Input: 0.40, Output: 1.60},
			"claude-haiku-4-5-20251001":  {Input: 1.00, Output: 5.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
		},
		Serper: SearchRate{PerQuery: 0.001},
		Jina:   SearchRate{PerQuery: 0.0},
	}
}
