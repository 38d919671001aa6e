package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// preloadMetrics attaches speaker metrics, highest participation first, with their speakers
func preloadMetrics(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Metrics", func(db *gorm.DB) *gorm.DB {
			return db.Order("participation_percentage DESC")
		}).
		Preload("Metrics.Speaker")
}

// Create inserts a meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Omit("Messages", "Metrics").Create(meeting).Error
}

// FindByID retrieves a meeting with its metrics
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := preloadMetrics(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// FindWithMessages retrieves a meeting with its messages in transcript order
func (r *meetingRepository) FindWithMessages(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := preloadMetrics(r.db.WithContext(ctx)).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Preload("Messages.Speaker").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// ListRecent returns the newest meetings first
func (r *meetingRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := preloadMetrics(r.db.WithContext(ctx)).Order("date DESC").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListBetween returns meetings dated in [from, to), oldest first
func (r *meetingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := preloadMetrics(r.db.WithContext(ctx)).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateAggregates writes the derived columns of an analyzed meeting
func (r *meetingRepository) UpdateAggregates(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meeting.ID).
		Updates(map[string]interface{}{
			"total_messages":         meeting.TotalMessages,
			"total_words":            meeting.TotalWords,
			"avg_sentiment":          meeting.AvgSentiment,
			"sentiment_label":        meeting.SentimentLabel,
			"participation_balance":  meeting.ParticipationBalance,
			"sentiment_distribution": meeting.SentimentDistribution,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// Delete removes a meeting with its messages and metrics
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.SpeakerMetric{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Meeting{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrMeetingNotFound
		}
		return nil
	})
}
