package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is an analyzed utterance. Ordering within a meeting is by SequenceOrder.
type Message struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MeetingID      uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_messages_meeting_sequence"`
	SpeakerID      uuid.UUID `json:"speaker_id" gorm:"type:uuid;not null;index"`
	Speaker        *Speaker  `json:"speaker,omitempty" gorm:"foreignKey:SpeakerID"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Timestamp      *string   `json:"timestamp,omitempty" gorm:"type:varchar(20)"`
	SequenceOrder  int       `json:"sequence_order" gorm:"not null;uniqueIndex:idx_messages_meeting_sequence"`
	WordCount      int       `json:"word_count" gorm:"not null;default:0"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	IsQuestion     bool      `json:"is_question" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns an ID when the caller did not
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
