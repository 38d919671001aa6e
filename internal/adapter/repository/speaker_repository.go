package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
)

// speakerRepository implements the SpeakerRepository interface
type speakerRepository struct {
	db *gorm.DB
}

// NewSpeakerRepository creates a new speaker repository
func NewSpeakerRepository(db *gorm.DB) repositories.SpeakerRepository {
	return &speakerRepository{db: db}
}

// FindOrCreate inserts the speaker unless the name already exists, then reads it back.
// The unique name index arbitrates concurrent first use.
func (r *speakerRepository) FindOrCreate(ctx context.Context, name string) (*entities.Speaker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.ErrInvalidSpeaker
	}

	speaker := entities.NewSpeaker(name)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(speaker).Error
	if err != nil {
		return nil, err
	}

	return r.FindByName(ctx, name)
}

// FindByName retrieves a speaker by normalized name
func (r *speakerRepository) FindByName(ctx context.Context, name string) (*entities.Speaker, error) {
	var speaker entities.Speaker
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&speaker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSpeakerNotFound
		}
		return nil, err
	}
	return &speaker, nil
}

// List returns all speakers ordered by name
func (r *speakerRepository) List(ctx context.Context) ([]*entities.Speaker, error) {
	var speakers []*entities.Speaker
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&speakers).Error; err != nil {
		return nil, err
	}
	return speakers, nil
}
