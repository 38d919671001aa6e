package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

type speakerFixture struct {
	name          string
	participation float64
	engagement    float64
	questions     int
}

func day(n int) time.Time {
	return time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// newMeeting builds an analyzed meeting with preloaded speaker metrics
func newMeeting(date int, sentiment, balance float64, messages int, speakers ...speakerFixture) *entities.Meeting {
	label := MeetingLabel(sentiment)
	m := &entities.Meeting{
		ID:                   uuid.New(),
		Title:                "Weekly sync",
		Date:                 day(date),
		TotalMessages:        messages,
		TotalWords:           messages * 8,
		AvgSentiment:         &sentiment,
		SentimentLabel:       &label,
		ParticipationBalance: &balance,
	}
	m.SentimentDistribution = datatypes.NewJSONType(entities.SentimentDistribution{Neutral: messages})

	for _, s := range speakers {
		m.Metrics = append(m.Metrics, entities.SpeakerMetric{
			ID:                      uuid.New(),
			MeetingID:               m.ID,
			Speaker:                 &entities.Speaker{ID: uuid.New(), Name: s.name},
			ParticipationPercentage: s.participation,
			EngagementScore:         s.engagement,
			QuestionCount:           s.questions,
		})
	}
	return m
}

func solo(engagement float64) speakerFixture {
	return speakerFixture{name: "Alice", participation: 100, engagement: engagement}
}
