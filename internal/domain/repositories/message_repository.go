package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// MessageRepository defines persistence operations for analyzed messages
type MessageRepository interface {
	// BulkCreate inserts all messages of an analysis pass
	BulkCreate(ctx context.Context, messages []*entities.Message) error

	// ListByMeeting returns a meeting's messages ordered by sequence
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Message, error)
}

// SpeakerMetricRepository defines persistence operations for per-speaker meeting metrics
type SpeakerMetricRepository interface {
	// ReplaceForMeeting deletes the meeting's existing metrics and inserts the given set
	ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, metrics []*entities.SpeakerMetric) error

	// ListByMeeting returns a meeting's metrics ordered by participation, highest first
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.SpeakerMetric, error)
}
