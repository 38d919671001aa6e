package analytics

import (
	"fmt"
	"sort"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// SpeakerComparison is one speaker's participation in two meetings.
// Change is set only when the speaker attended both.
type SpeakerComparison struct {
	Speaker string   `json:"speaker" yaml:"speaker"`
	First   *float64 `json:"first,omitempty" yaml:"first,omitempty"`
	Second  *float64 `json:"second,omitempty" yaml:"second,omitempty"`
	Change  *float64 `json:"change,omitempty" yaml:"change,omitempty"`
}

// MeetingComparison contrasts two meetings, second relative to first
type MeetingComparison struct {
	FirstID            string                         `json:"first_id" yaml:"first_id"`
	SecondID           string                         `json:"second_id" yaml:"second_id"`
	SentimentChange    float64                        `json:"sentiment_change" yaml:"sentiment_change"`
	BalanceChange      float64                        `json:"balance_change" yaml:"balance_change"`
	MessageChange      int                            `json:"message_change" yaml:"message_change"`
	WordChange         int                            `json:"word_change" yaml:"word_change"`
	Summary            string                         `json:"summary" yaml:"summary"`
	Speakers           []SpeakerComparison            `json:"speakers" yaml:"speakers"`
	FirstDistribution  entities.SentimentDistribution `json:"first_distribution" yaml:"first_distribution"`
	SecondDistribution entities.SentimentDistribution `json:"second_distribution" yaml:"second_distribution"`
}

const (
	comparisonSentimentDelta = 0.1
	comparisonBalanceDelta   = 0.1
	comparisonMessageDelta   = 20
)

// CompareMeetings describes how the second meeting differs from the first
func CompareMeetings(first, second *entities.Meeting) MeetingComparison {
	c := MeetingComparison{
		FirstID:            first.ID.String(),
		SecondID:           second.ID.String(),
		SentimentChange:    second.SentimentValue() - first.SentimentValue(),
		BalanceChange:      second.BalanceValue() - first.BalanceValue(),
		MessageChange:      second.TotalMessages - first.TotalMessages,
		WordChange:         second.TotalWords - first.TotalWords,
		Speakers:           compareSpeakers(first, second),
		FirstDistribution:  first.SentimentDistribution.Data(),
		SecondDistribution: second.SentimentDistribution.Data(),
	}
	c.Summary = comparisonSummary(c)
	return c
}

func comparisonSummary(c MeetingComparison) string {
	var sentiment, balance string

	switch {
	case c.SentimentChange > comparisonSentimentDelta:
		sentiment = fmt.Sprintf("Team sentiment improved significantly between meetings (+%.2f)", c.SentimentChange)
	case c.SentimentChange < -comparisonSentimentDelta:
		sentiment = fmt.Sprintf("Team sentiment declined between meetings (%.2f)", c.SentimentChange)
	default:
		sentiment = "Team sentiment remained relatively stable"
	}

	switch {
	case c.BalanceChange > comparisonBalanceDelta:
		balance = "participation became more balanced"
	case c.BalanceChange < -comparisonBalanceDelta:
		balance = "participation became more imbalanced"
	default:
		balance = "participation balance stayed consistent"
	}

	summary := fmt.Sprintf("%s, while %s", sentiment, balance)
	switch {
	case c.MessageChange > comparisonMessageDelta:
		summary += fmt.Sprintf(". Communication volume increased substantially (+%d messages)", c.MessageChange)
	case c.MessageChange < -comparisonMessageDelta:
		summary += fmt.Sprintf(". Communication volume decreased (%d messages)", c.MessageChange)
	}

	return summary + "."
}

func compareSpeakers(first, second *entities.Meeting) []SpeakerComparison {
	byName := make(map[string]*SpeakerComparison)
	get := func(name string) *SpeakerComparison {
		sc, ok := byName[name]
		if !ok {
			sc = &SpeakerComparison{Speaker: name}
			byName[name] = sc
		}
		return sc
	}

	for _, metric := range first.Metrics {
		get(metric.SpeakerName()).First = ptr(metric.ParticipationPercentage)
	}
	for _, metric := range second.Metrics {
		get(metric.SpeakerName()).Second = ptr(metric.ParticipationPercentage)
	}

	out := make([]SpeakerComparison, 0, len(byName))
	for _, sc := range byName {
		if sc.First != nil && sc.Second != nil {
			sc.Change = ptr(*sc.Second - *sc.First)
		}
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Speaker < out[j].Speaker
	})
	return out
}
