package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

func TestCompareMeetings(t *testing.T) {
	first := newMeeting(0, 0.1, 0.9, 10,
		speakerFixture{name: "Alice", participation: 40},
		speakerFixture{name: "Bob", participation: 60})
	first.SentimentDistribution = datatypes.NewJSONType(entities.SentimentDistribution{Positive: 3, Neutral: 6, Negative: 1})

	second := newMeeting(7, 0.4, 0.7, 35,
		speakerFixture{name: "Alice", participation: 70},
		speakerFixture{name: "Carol", participation: 30})

	got := CompareMeetings(first, second)

	assert.InDelta(t, 0.3, got.SentimentChange, 1e-9)
	assert.InDelta(t, -0.2, got.BalanceChange, 1e-9)
	assert.Equal(t, 25, got.MessageChange)
	assert.Equal(t, 25*8, got.WordChange)
	assert.Equal(t, "Team sentiment improved significantly between meetings (+0.30), while participation became more imbalanced. Communication volume increased substantially (+25 messages).", got.Summary)
	assert.Equal(t, 3, got.FirstDistribution.Positive)
	assert.Equal(t, 35, got.SecondDistribution.Neutral)

	require.Len(t, got.Speakers, 3)
	assert.Equal(t, "Alice", got.Speakers[0].Speaker)
	require.NotNil(t, got.Speakers[0].Change)
	assert.InDelta(t, 30, *got.Speakers[0].Change, 1e-9)
	assert.Equal(t, "Bob", got.Speakers[1].Speaker)
	assert.Nil(t, got.Speakers[1].Second)
	assert.Nil(t, got.Speakers[1].Change)
	assert.Equal(t, "Carol", got.Speakers[2].Speaker)
	assert.Nil(t, got.Speakers[2].First)
}

func TestComparisonSummary_Stable(t *testing.T) {
	got := comparisonSummary(MeetingComparison{SentimentChange: 0.05, BalanceChange: 0.1, MessageChange: -20})
	assert.Equal(t, "Team sentiment remained relatively stable, while participation balance stayed consistent.", got)

	got = comparisonSummary(MeetingComparison{SentimentChange: -0.25, BalanceChange: 0.2, MessageChange: -21})
	assert.Equal(t, "Team sentiment declined between meetings (-0.25), while participation became more balanced. Communication volume decreased (-21 messages).", got)
}
