package meeting

import (
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
)

// MeetingDetail is a persisted meeting with its per-speaker figures
type MeetingDetail struct {
	ID                    string                         `json:"id" yaml:"id"`
	Title                 string                         `json:"title" yaml:"title"`
	Date                  string                         `json:"date" yaml:"date"`
	DurationMinutes       *int                           `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	TotalMessages         int                            `json:"total_messages" yaml:"total_messages"`
	TotalWords            int                            `json:"total_words" yaml:"total_words"`
	AvgSentiment          float64                        `json:"avg_sentiment" yaml:"avg_sentiment"`
	SentimentLabel        entities.SentimentLabel        `json:"sentiment_label" yaml:"sentiment_label"`
	ParticipationBalance  float64                        `json:"participation_balance" yaml:"participation_balance"`
	SentimentDistribution entities.SentimentDistribution `json:"sentiment_distribution" yaml:"sentiment_distribution"`
	Speakers              []analytics.SpeakerStats       `json:"speakers" yaml:"speakers"`
	Messages              []MessageView                  `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// MessageView is one stored message in transcript order
type MessageView struct {
	Sequence       int     `json:"sequence" yaml:"sequence"`
	Speaker        string  `json:"speaker" yaml:"speaker"`
	Content        string  `json:"content" yaml:"content"`
	Timestamp      *string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	WordCount      int     `json:"word_count" yaml:"word_count"`
	SentimentScore float64 `json:"sentiment_score" yaml:"sentiment_score"`
	IsQuestion     bool    `json:"is_question" yaml:"is_question"`
}

// RiskOverview is the filtered risk catalog for a window of meetings
type RiskOverview struct {
	MeetingCount int                      `json:"meeting_count" yaml:"meeting_count"`
	Overall      analytics.OverallRisk    `json:"overall" yaml:"overall"`
	Counts       analytics.SeverityCounts `json:"counts" yaml:"counts"`
	Risks        []analytics.RiskEntry    `json:"risks" yaml:"risks"`
}

func newMeetingDetail(m *entities.Meeting) *MeetingDetail {
	detail := &MeetingDetail{
		ID:                    m.ID.String(),
		Title:                 m.Title,
		Date:                  m.Date.Format(dateLayout),
		DurationMinutes:       m.DurationMinutes,
		TotalMessages:         m.TotalMessages,
		TotalWords:            m.TotalWords,
		AvgSentiment:          m.SentimentValue(),
		SentimentLabel:        m.LabelValue(),
		ParticipationBalance:  m.BalanceValue(),
		SentimentDistribution: m.SentimentDistribution.Data(),
		Speakers:              make([]analytics.SpeakerStats, 0, len(m.Metrics)),
	}

	for i := range m.Metrics {
		metric := &m.Metrics[i]
		detail.Speakers = append(detail.Speakers, analytics.SpeakerStats{
			Speaker:                 metric.SpeakerName(),
			TotalMessages:           metric.TotalMessages,
			TotalWords:              metric.TotalWords,
			ParticipationPercentage: metric.ParticipationPercentage,
			AvgWordsPerMessage:      metric.AvgWordsPerMessage,
			EngagementScore:         metric.EngagementScore,
			AvgSentiment:            metric.SentimentValue(),
			PositiveCount:           metric.PositiveCount,
			NeutralCount:            metric.NeutralCount,
			NegativeCount:           metric.NegativeCount,
			QuestionCount:           metric.QuestionCount,
		})
	}

	for _, msg := range m.Messages {
		view := MessageView{
			Sequence:   msg.SequenceOrder,
			Content:    msg.Content,
			Timestamp:  msg.Timestamp,
			WordCount:  msg.WordCount,
			IsQuestion: msg.IsQuestion,
		}
		if msg.Speaker != nil {
			view.Speaker = msg.Speaker.Name
		}
		if msg.SentimentScore != nil {
			view.SentimentScore = *msg.SentimentScore
		}
		detail.Messages = append(detail.Messages, view)
	}

	return detail
}
