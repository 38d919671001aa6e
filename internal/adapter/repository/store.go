package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

// gormStore groups the GORM repositories over one connection or transaction
type gormStore struct {
	db       *gorm.DB
	meetings repositories.MeetingRepository
	speakers repositories.SpeakerRepository
	messages repositories.MessageRepository
	metrics  repositories.SpeakerMetricRepository
}

// NewStore creates a Store backed by GORM
func NewStore(db *gorm.DB) repositories.Store {
	return &gormStore{
		db:       db,
		meetings: NewMeetingRepository(db),
		speakers: NewSpeakerRepository(db),
		messages: NewMessageRepository(db),
		metrics:  NewSpeakerMetricRepository(db),
	}
}

func (s *gormStore) Meetings() repositories.MeetingRepository { return s.meetings }
func (s *gormStore) Speakers() repositories.SpeakerRepository { return s.speakers }
func (s *gormStore) Messages() repositories.MessageRepository { return s.messages }
func (s *gormStore) Metrics() repositories.SpeakerMetricRepository { return s.metrics }

// WithinTransaction runs fn inside a database transaction. Nested calls become savepoints.
func (s *gormStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
