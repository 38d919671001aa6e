package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SentimentLabel classifies a sentiment score
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentDistribution counts messages per sentiment bucket
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Meeting is one analyzed transcript together with its derived aggregates.
// Aggregates are recomputed as a whole on every analysis pass.
type Meeting struct {
	ID                    uuid.UUID                                 `json:"id" gorm:"type:uuid;primaryKey"`
	Title                 string                                    `json:"title" gorm:"type:varchar(255);not null"`
	Date                  time.Time                                 `json:"date" gorm:"not null;index"`
	DurationMinutes       *int                                      `json:"duration_minutes,omitempty"`
	RawTranscript         string                                    `json:"-" gorm:"type:text;not null"`
	TotalMessages         int                                       `json:"total_messages" gorm:"not null;default:0"`
	TotalWords            int                                       `json:"total_words" gorm:"not null;default:0"`
	AvgSentiment          *float64                                  `json:"avg_sentiment,omitempty"`
	SentimentLabel        *SentimentLabel                           `json:"sentiment_label,omitempty" gorm:"type:varchar(20)"`
	ParticipationBalance  *float64                                  `json:"participation_balance,omitempty"`
	SentimentDistribution datatypes.JSONType[SentimentDistribution] `json:"sentiment_distribution"`
	Messages              []Message                                 `json:"messages,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
	Metrics               []SpeakerMetric                           `json:"metrics,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time                                 `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time                                 `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// BeforeCreate assigns an ID when the caller did not
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NewMeeting creates a new, not yet analyzed meeting
func NewMeeting(title string, date time.Time, rawTranscript string) *Meeting {
	return &Meeting{
		ID:            uuid.New(),
		Title:         title,
		Date:          date,
		RawTranscript: rawTranscript,
	}
}

// Analyzed reports whether the analysis pass has populated the aggregates
func (m *Meeting) Analyzed() bool {
	return m.AvgSentiment != nil && m.SentimentLabel != nil && m.ParticipationBalance != nil
}

// SentimentValue returns the average sentiment, 0 when absent
func (m *Meeting) SentimentValue() float64 {
	if m.AvgSentiment == nil {
		return 0
	}
	return *m.AvgSentiment
}

// BalanceValue returns the participation balance, 0 when absent
func (m *Meeting) BalanceValue() float64 {
	if m.ParticipationBalance == nil {
		return 0
	}
	return *m.ParticipationBalance
}

// LabelValue returns the sentiment label, empty when absent
func (m *Meeting) LabelValue() SentimentLabel {
	if m.SentimentLabel == nil {
		return ""
	}
	return *m.SentimentLabel
}
