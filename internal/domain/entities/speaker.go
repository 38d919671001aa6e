package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Speaker is a meeting participant, unique by normalized name and shared across meetings
type Speaker struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Speaker) TableName() string {
	return "speakers"
}

// BeforeCreate assigns an ID when the caller did not
func (s *Speaker) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NewSpeaker creates a speaker for an already normalized name
func NewSpeaker(name string) *Speaker {
	return &Speaker{
		ID:   uuid.New(),
		Name: name,
	}
}
