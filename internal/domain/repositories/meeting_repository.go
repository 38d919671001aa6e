package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings
type MeetingRepository interface {
	// Create inserts a meeting without its messages or metrics
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting with its speaker metrics (and their speakers) preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindWithMessages retrieves a meeting with messages ordered by sequence and metrics preloaded
	FindWithMessages(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListRecent returns up to limit meetings, newest first, metrics preloaded. limit <= 0 means all.
	ListRecent(ctx context.Context, limit int) ([]*entities.Meeting, error)

	// ListBetween returns meetings with from <= date < to, oldest first, metrics preloaded
	ListBetween(ctx context.Context, from, to time.Time) ([]*entities.Meeting, error)

	// UpdateAggregates writes the derived aggregate columns of a meeting
	UpdateAggregates(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes a meeting together with its messages and metrics. Speakers are kept.
	Delete(ctx context.Context, id uuid.UUID) error
}
