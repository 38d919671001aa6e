package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

const insertBatchSize = 200

// messageRepository implements the MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &messageRepository{db: db}
}

// BulkCreate inserts messages in batches
func (r *messageRepository) BulkCreate(ctx context.Context, messages []*entities.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Speaker").CreateInBatches(messages, insertBatchSize).Error
}

// ListByMeeting returns a meeting's messages in transcript order
func (r *messageRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Message, error) {
	var messages []*entities.Message
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Where("meeting_id = ?", meetingID).
		Order("sequence_order ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// speakerMetricRepository implements the SpeakerMetricRepository interface
type speakerMetricRepository struct {
	db *gorm.DB
}

// NewSpeakerMetricRepository creates a new speaker metric repository
func NewSpeakerMetricRepository(db *gorm.DB) repositories.SpeakerMetricRepository {
	return &speakerMetricRepository{db: db}
}

// ReplaceForMeeting swaps the meeting's metric set for the given one
func (r *speakerMetricRepository) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, metrics []*entities.SpeakerMetric) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.SpeakerMetric{}).Error; err != nil {
			return err
		}
		if len(metrics) == 0 {
			return nil
		}
		for _, m := range metrics {
			m.MeetingID = meetingID
		}
		return tx.Omit("Speaker").CreateInBatches(metrics, insertBatchSize).Error
	})
}

// ListByMeeting returns a meeting's metrics, highest participation first
func (r *speakerMetricRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.SpeakerMetric, error) {
	var metrics []*entities.SpeakerMetric
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Where("meeting_id = ?", meetingID).
		Order("participation_percentage DESC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
