package repositories

import (
	"context"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// SpeakerRepository defines persistence operations for the shared speaker registry
type SpeakerRepository interface {
	// FindOrCreate returns the speaker for a normalized name, creating it on first use.
	// Concurrent first use must never produce two speakers with the same name.
	FindOrCreate(ctx context.Context, name string) (*entities.Speaker, error)

	// FindByName retrieves a speaker by normalized name
	FindByName(ctx context.Context, name string) (*entities.Speaker, error)

	// List returns every known speaker ordered by name
	List(ctx context.Context) ([]*entities.Speaker, error)
}
