package analytics

import (
	"math"
	"sort"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// SpeakerStats are one speaker's figures within a single meeting
type SpeakerStats struct {
	Speaker                 string  `json:"speaker" yaml:"speaker"`
	TotalMessages           int     `json:"total_messages" yaml:"total_messages"`
	TotalWords              int     `json:"total_words" yaml:"total_words"`
	ParticipationPercentage float64 `json:"participation_percentage" yaml:"participation_percentage"`
	AvgWordsPerMessage      float64 `json:"avg_words_per_message" yaml:"avg_words_per_message"`
	EngagementScore         float64 `json:"engagement_score" yaml:"engagement_score"`
	AvgSentiment            float64 `json:"avg_sentiment" yaml:"avg_sentiment"`
	PositiveCount           int     `json:"positive_count" yaml:"positive_count"`
	NeutralCount            int     `json:"neutral_count" yaml:"neutral_count"`
	NegativeCount           int     `json:"negative_count" yaml:"negative_count"`
	QuestionCount           int     `json:"question_count" yaml:"question_count"`
}

// MeetingAggregate holds the meeting-level figures
type MeetingAggregate struct {
	TotalMessages         int                            `json:"total_messages" yaml:"total_messages"`
	TotalWords            int                            `json:"total_words" yaml:"total_words"`
	AvgSentiment          float64                        `json:"avg_sentiment" yaml:"avg_sentiment"`
	SentimentLabel        entities.SentimentLabel        `json:"sentiment_label" yaml:"sentiment_label"`
	ParticipationBalance  float64                        `json:"participation_balance" yaml:"participation_balance"`
	SentimentDistribution entities.SentimentDistribution `json:"sentiment_distribution" yaml:"sentiment_distribution"`
}

// MeetingAnalysis is the output of one metrics pass
type MeetingAnalysis struct {
	Speakers  []SpeakerStats   `json:"speakers" yaml:"speakers"`
	Aggregate MeetingAggregate `json:"aggregate" yaml:"aggregate"`
}

// ComputeMeetingMetrics aggregates analyzed messages per speaker and for the meeting.
// Speakers are returned in order of first appearance.
func ComputeMeetingMetrics(messages []AnalyzedMessage) MeetingAnalysis {
	order := make([]string, 0)
	grouped := make(map[string][]AnalyzedMessage)
	for _, msg := range messages {
		if _, seen := grouped[msg.Speaker]; !seen {
			order = append(order, msg.Speaker)
		}
		grouped[msg.Speaker] = append(grouped[msg.Speaker], msg)
	}

	totalMessages := len(messages)
	speakers := make([]SpeakerStats, 0, len(order))
	for _, name := range order {
		speakers = append(speakers, speakerStats(name, grouped[name], totalMessages))
	}

	totalWords := 0
	scores := make([]float64, 0, len(messages))
	for _, msg := range messages {
		totalWords += msg.WordCount
		scores = append(scores, msg.SentimentScore)
	}
	avgSentiment := mean(scores)

	percentages := make([]float64, 0, len(speakers))
	for _, s := range speakers {
		percentages = append(percentages, s.ParticipationPercentage)
	}

	return MeetingAnalysis{
		Speakers: speakers,
		Aggregate: MeetingAggregate{
			TotalMessages:         totalMessages,
			TotalWords:            totalWords,
			AvgSentiment:          avgSentiment,
			SentimentLabel:        MeetingLabel(avgSentiment),
			ParticipationBalance:  ParticipationBalance(percentages),
			SentimentDistribution: SentimentDistributionOf(scores, totalMessages),
		},
	}
}

func speakerStats(name string, messages []AnalyzedMessage, totalMessages int) SpeakerStats {
	stats := SpeakerStats{
		Speaker:       name,
		TotalMessages: len(messages),
	}

	scores := make([]float64, 0, len(messages))
	for _, msg := range messages {
		stats.TotalWords += msg.WordCount
		if msg.IsQuestion {
			stats.QuestionCount++
		}
		scores = append(scores, msg.SentimentScore)

		switch {
		case msg.SentimentScore > BucketPositiveThreshold:
			stats.PositiveCount++
		case msg.SentimentScore < BucketNegativeThreshold:
			stats.NegativeCount++
		default:
			stats.NeutralCount++
		}
	}

	if totalMessages > 0 {
		stats.ParticipationPercentage = float64(stats.TotalMessages) / float64(totalMessages) * 100
	}
	if stats.TotalMessages > 0 {
		stats.AvgWordsPerMessage = float64(stats.TotalWords) / float64(stats.TotalMessages)
	}
	stats.AvgSentiment = mean(scores)
	stats.EngagementScore = EngagementScore(stats.AvgWordsPerMessage, stats.QuestionCount, stats.TotalMessages, stats.ParticipationPercentage)

	return stats
}

// EngagementScore blends message length, question rate and participation share
// into a 0-100 score rounded to two decimals.
func EngagementScore(avgWords float64, questions, messages int, participation float64) float64 {
	wordScore := math.Min(avgWords/EngagementFullWordCount*100, 100)

	var questionScore float64
	if messages > 0 {
		questionScore = math.Min(float64(questions)/float64(messages)*100, 100)
	}

	participationScore := math.Min(participation, 100)

	engagement := wordScore*EngagementWordWeight +
		questionScore*EngagementQuestionWeight +
		participationScore*EngagementParticipationWeight

	return clamp(round(engagement, 2), 0, 100)
}

// MeetingLabel classifies a meeting's average sentiment
func MeetingLabel(avg float64) entities.SentimentLabel {
	switch {
	case avg > MeetingPositiveThreshold:
		return entities.SentimentPositive
	case avg < MeetingNegativeThreshold:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// ParticipationBalance is 1 minus the Gini coefficient of the participation
// percentages, clamped to [0,1]. One speaker or none counts as balanced.
func ParticipationBalance(percentages []float64) float64 {
	n := len(percentages)
	if n <= 1 {
		return 1.0
	}

	sorted := append([]float64(nil), percentages...)
	sort.Float64s(sorted)

	var total, weighted float64
	for i, p := range sorted {
		total += p
		weighted += float64(n-i) * p
	}
	if total == 0 {
		return 1.0
	}

	nf := float64(n)
	gini := (nf+1)/nf - 2*weighted/(nf*total)

	return clamp(1-gini, 0, 1)
}

// SentimentDistributionOf buckets message scores. Messages without a score
// count as neutral, so the buckets always sum to total.
func SentimentDistributionOf(scores []float64, total int) entities.SentimentDistribution {
	var dist entities.SentimentDistribution
	for _, s := range scores {
		switch {
		case s > BucketPositiveThreshold:
			dist.Positive++
		case s < BucketNegativeThreshold:
			dist.Negative++
		}
	}
	dist.Neutral = total - dist.Positive - dist.Negative
	return dist
}
