package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpeakerMetric holds per-speaker figures for one meeting.
// At most one row exists per (meeting, speaker).
type SpeakerMetric struct {
	ID                      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MeetingID               uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_speaker_metrics_meeting_speaker"`
	SpeakerID               uuid.UUID `json:"speaker_id" gorm:"type:uuid;not null;uniqueIndex:idx_speaker_metrics_meeting_speaker"`
	Speaker                 *Speaker  `json:"speaker,omitempty" gorm:"foreignKey:SpeakerID"`
	TotalMessages           int       `json:"total_messages" gorm:"not null;default:0"`
	TotalWords              int       `json:"total_words" gorm:"not null;default:0"`
	ParticipationPercentage float64   `json:"participation_percentage" gorm:"not null;default:0"`
	AvgWordsPerMessage      float64   `json:"avg_words_per_message" gorm:"not null;default:0"`
	EngagementScore         float64   `json:"engagement_score" gorm:"not null;default:0"`
	AvgSentiment            *float64  `json:"avg_sentiment,omitempty"`
	PositiveCount           int       `json:"positive_count" gorm:"not null;default:0"`
	NeutralCount            int       `json:"neutral_count" gorm:"not null;default:0"`
	NegativeCount           int       `json:"negative_count" gorm:"not null;default:0"`
	QuestionCount           int       `json:"question_count" gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (SpeakerMetric) TableName() string {
	return "speaker_metrics"
}

// BeforeCreate assigns an ID when the caller did not
func (sm *SpeakerMetric) BeforeCreate(tx *gorm.DB) error {
	if sm.ID == uuid.Nil {
		sm.ID = uuid.New()
	}
	return nil
}

// SpeakerName returns the loaded speaker's name, empty if the relation was not preloaded
func (sm *SpeakerMetric) SpeakerName() string {
	if sm.Speaker == nil {
		return ""
	}
	return sm.Speaker.Name
}

// SentimentValue returns the average sentiment, 0 when absent
func (sm *SpeakerMetric) SentimentValue() float64 {
	if sm.AvgSentiment == nil {
		return 0
	}
	return *sm.AvgSentiment
}
