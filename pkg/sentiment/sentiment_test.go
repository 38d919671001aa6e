package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaderProvider_Polarity(t *testing.T) {
	p := NewVaderProvider()

	good := p.Analyze("This is great, I love working with this team!")
	bad := p.Analyze("This is terrible and I hate it.")

	assert.Greater(t, good.Compound, 0.05)
	assert.Less(t, bad.Compound, -0.05)
	for _, s := range []Scores{good, bad} {
		assert.GreaterOrEqual(t, s.Compound, -1.0)
		assert.LessOrEqual(t, s.Compound, 1.0)
	}
}

func TestVaderProvider_Deterministic(t *testing.T) {
	p := NewVaderProvider()
	text := "We shipped the release, but the on-call week was rough."

	assert.Equal(t, p.Analyze(text), p.Analyze(text))
}

func TestProviderFunc(t *testing.T) {
	var p Provider = ProviderFunc(func(text string) Scores {
		return Scores{Compound: float64(len(text)) / 10}
	})

	assert.InDelta(t, 0.3, p.Analyze("abc").Compound, 1e-9)
}
