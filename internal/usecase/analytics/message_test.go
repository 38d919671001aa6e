package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
	"github.com/johnquangdev/team-pulse/pkg/sentiment"
)

func fixedProvider(score float64) sentiment.Provider {
	return sentiment.ProviderFunc(func(string) sentiment.Scores {
		return sentiment.Scores{Compound: score}
	})
}

func TestMessageAnalyzer_Analyze(t *testing.T) {
	a := NewMessageAnalyzer(fixedProvider(0.62))

	got := a.Analyze("  We   shipped\tthe release  ")

	assert.Equal(t, 4, got.WordCount)
	assert.Equal(t, 0.62, got.SentimentScore)
	assert.Equal(t, entities.SentimentPositive, got.Label)
	assert.False(t, got.IsQuestion)
}

func TestMessageAnalyzer_AnalyzeUtterancesNormalizesSpeakers(t *testing.T) {
	a := NewMessageAnalyzer(fixedProvider(0))
	utterances := []transcript.Utterance{
		{Speaker: "alice SMITH", Content: "what is next", Sequence: 1},
		{Speaker: "Bob", Content: "the roadmap", Sequence: 2},
	}

	got := a.AnalyzeUtterances(utterances)

	require.Len(t, got, 2)
	assert.Equal(t, "Alice Smith", got[0].Speaker)
	assert.True(t, got[0].IsQuestion)
	assert.Equal(t, 2, got[1].Sequence)
	assert.Equal(t, entities.SentimentNeutral, got[1].Label)
}

func TestMessageLabel_Boundaries(t *testing.T) {
	assert.Equal(t, entities.SentimentPositive, MessageLabel(0.05))
	assert.Equal(t, entities.SentimentNeutral, MessageLabel(0.0499))
	assert.Equal(t, entities.SentimentNeutral, MessageLabel(-0.0499))
	assert.Equal(t, entities.SentimentNegative, MessageLabel(-0.05))
}

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"Are we done?", true},
		{"we are done?", true},
		{"How are you doing", true},
		{"  Should we wait", true},
		{"Did it ship", true},
		{"Donuts are in the kitchen", true}, // plain prefix match on "do"
		{"Hello everyone", false},
		{"Hi Alice, great to see you", false},
		{"Sounds good", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuestion(tt.content))
		})
	}
}
