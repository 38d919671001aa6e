package analytics

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
)

func TestComputeMeetingMetrics_TwoSpeakers(t *testing.T) {
	raw := "Alice: Hello everyone\nBob: Hi Alice, great to see you\nAlice: How are you doing?"
	utterances := transcript.NewParser().Parse(raw)
	require.Len(t, utterances, 3)

	messages := NewMessageAnalyzer(fixedProvider(0.3)).AnalyzeUtterances(utterances)
	got := ComputeMeetingMetrics(messages)

	require.Len(t, got.Speakers, 2)
	alice, bob := got.Speakers[0], got.Speakers[1]

	assert.Equal(t, "Alice", alice.Speaker)
	assert.Equal(t, 2, alice.TotalMessages)
	assert.Equal(t, 1, alice.QuestionCount)
	assert.InDelta(t, 66.67, alice.ParticipationPercentage, 0.01)
	assert.InDelta(t, 3.0, alice.AvgWordsPerMessage, 1e-9)

	assert.Equal(t, "Bob", bob.Speaker)
	assert.Equal(t, 1, bob.TotalMessages)
	assert.Equal(t, 0, bob.QuestionCount)
	assert.InDelta(t, 33.33, bob.ParticipationPercentage, 0.01)

	agg := got.Aggregate
	assert.Equal(t, 3, agg.TotalMessages)
	assert.Equal(t, 12, agg.TotalWords)
	assert.InDelta(t, 0.3, agg.AvgSentiment, 1e-9)
	assert.Equal(t, entities.SentimentPositive, agg.SentimentLabel)
	assert.Equal(t, entities.SentimentDistribution{Positive: 3}, agg.SentimentDistribution)
	assert.Greater(t, agg.ParticipationBalance, 0.0)
	assert.Less(t, agg.ParticipationBalance, 1.0)

	total := 0
	for _, s := range got.Speakers {
		total += s.TotalMessages
	}
	assert.Equal(t, agg.TotalMessages, total)
}

func TestComputeMeetingMetrics_SingleSpeakerIsBalanced(t *testing.T) {
	messages := NewMessageAnalyzer(fixedProvider(-0.2)).AnalyzeUtterances([]transcript.Utterance{
		{Speaker: "alice", Content: "one", Sequence: 1},
		{Speaker: "ALICE", Content: "two", Sequence: 2},
	})

	got := ComputeMeetingMetrics(messages)

	require.Len(t, got.Speakers, 1)
	assert.Equal(t, 1.0, got.Aggregate.ParticipationBalance)
	assert.Equal(t, entities.SentimentNegative, got.Aggregate.SentimentLabel)
	assert.Equal(t, 2, got.Speakers[0].NegativeCount)
}

func TestComputeMeetingMetrics_Empty(t *testing.T) {
	got := ComputeMeetingMetrics(nil)

	assert.Empty(t, got.Speakers)
	assert.Equal(t, 0.0, got.Aggregate.AvgSentiment)
	assert.Equal(t, entities.SentimentNeutral, got.Aggregate.SentimentLabel)
	assert.Equal(t, 1.0, got.Aggregate.ParticipationBalance)
}

func TestComputeMeetingMetrics_ParticipationSumsToHundred(t *testing.T) {
	var utterances []transcript.Utterance
	for i := 0; i < 17; i++ {
		utterances = append(utterances, transcript.Utterance{
			Speaker:  fmt.Sprintf("Speaker %d", i%3+i%5),
			Content:  "status update",
			Sequence: i + 1,
		})
	}

	got := ComputeMeetingMetrics(NewMessageAnalyzer(fixedProvider(0)).AnalyzeUtterances(utterances))

	var sum float64
	for _, s := range got.Speakers {
		sum += s.ParticipationPercentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestParticipationBalance(t *testing.T) {
	assert.Equal(t, 1.0, ParticipationBalance(nil))
	assert.Equal(t, 1.0, ParticipationBalance([]float64{100}))
	assert.InDelta(t, 1.0, ParticipationBalance([]float64{25, 25, 25, 25}), 1e-9)
	assert.InDelta(t, 1.0, ParticipationBalance([]float64{100.0 / 3, 100.0 / 3, 100.0 / 3}), 1e-9)
	assert.Equal(t, 1.0, ParticipationBalance([]float64{0, 0}))

	// one speaker holding everything tends to zero as the team grows
	prev := 1.0
	for n := 2; n <= 50; n++ {
		p := make([]float64, n)
		p[n-1] = 100
		b := ParticipationBalance(p)
		assert.InDelta(t, 1/float64(n), b, 1e-9)
		assert.Less(t, b, prev)
		prev = b
	}

	assert.Greater(t, ParticipationBalance([]float64{40, 30, 30}), ParticipationBalance([]float64{80, 10, 10}))
}

func TestParticipationBalance_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := rng.Intn(8) + 2
		p := make([]float64, n)
		for j := range p {
			p[j] = rng.Float64() * 100
		}
		b := ParticipationBalance(p)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.LessOrEqual(t, b, 1.0)
	}
}

func TestEngagementScore(t *testing.T) {
	// 10 words avg, 1 of 4 questions, 50% participation
	assert.InDelta(t, 0.4*50+0.3*25+0.3*50, EngagementScore(10, 1, 4, 50), 1e-9)

	assert.Equal(t, 100.0, EngagementScore(1000, 5, 5, 100))
	assert.Equal(t, 100.0, EngagementScore(1000, 50, 5, 250))
	assert.Equal(t, 0.0, EngagementScore(0, 0, 0, 0))

	assert.Equal(t, 2.47, EngagementScore(1.23456, 0, 1, 0)) // rounded to 2 decimals
}

func TestMeetingLabel_Boundaries(t *testing.T) {
	assert.Equal(t, entities.SentimentNeutral, MeetingLabel(0.1))
	assert.Equal(t, entities.SentimentPositive, MeetingLabel(0.1001))
	assert.Equal(t, entities.SentimentNeutral, MeetingLabel(-0.1))
	assert.Equal(t, entities.SentimentNegative, MeetingLabel(-0.1001))
}

func TestSentimentDistributionOf(t *testing.T) {
	got := SentimentDistributionOf([]float64{0.5, 0.05, -0.06, 0, -0.9}, 7)
	assert.Equal(t, entities.SentimentDistribution{Positive: 1, Neutral: 4, Negative: 2}, got)
}
