package sentiment

import (
	"github.com/jonreiter/govader"
)

// Scores is the polarity breakdown for a piece of text.
// Compound is in [-1,1]; the proportions are in [0,1].
type Scores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Provider scores text. Implementations must be deterministic for identical input.
type Provider interface {
	Analyze(text string) Scores
}

// ProviderFunc adapts a plain function to Provider
type ProviderFunc func(text string) Scores

// Analyze calls f(text)
func (f ProviderFunc) Analyze(text string) Scores {
	return f(text)
}

// VaderProvider scores text with the VADER lexicon
type VaderProvider struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderProvider creates a VADER-backed provider
func NewVaderProvider() *VaderProvider {
	return &VaderProvider{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Analyze returns VADER polarity scores for text
func (p *VaderProvider) Analyze(text string) Scores {
	s := p.analyzer.PolarityScores(text)
	return Scores{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}
