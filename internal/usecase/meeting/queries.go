package meeting

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
)

// RiskFilter narrows the risk catalog. Zero values match everything.
type RiskFilter struct {
	Window   int
	Severity analytics.RiskLevel
	Category analytics.RiskCategory
}

var (
	filterableSeverities = map[analytics.RiskLevel]bool{
		analytics.RiskHigh:   true,
		analytics.RiskMedium: true,
		analytics.RiskLow:    true,
	}
	filterableCategories = map[analytics.RiskCategory]bool{
		analytics.CategoryConflict:      true,
		analytics.CategoryBurnout:       true,
		analytics.CategoryDominance:     true,
		analytics.CategoryDisengagement: true,
	}
)

// Get returns a meeting with its speaker figures and messages
func (s *meetingService) Get(ctx context.Context, id uuid.UUID) (*MeetingDetail, error) {
	m, err := s.store.Meetings().FindWithMessages(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, id)
	}
	return newMeetingDetail(m), nil
}

// List returns the most recent meetings first; limit <= 0 lists all
func (s *meetingService) List(ctx context.Context, limit int) ([]analytics.MeetingSummary, error) {
	meetings, err := s.store.Meetings().ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}

	summaries := make([]analytics.MeetingSummary, 0, len(meetings))
	for _, m := range meetings {
		summaries = append(summaries, analytics.SummarizeMeeting(m))
	}
	return summaries, nil
}

// Delete removes a meeting with its messages and metrics; speakers stay
func (s *meetingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Meetings().Delete(ctx, id); err != nil {
		return mapStoreError(err, id)
	}
	s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	return nil
}

// SpeakerTrend tracks one speaker's engagement across every meeting they attended
func (s *meetingService) SpeakerTrend(ctx context.Context, name string) (*analytics.SpeakerTrendResult, error) {
	normalized := transcript.NormalizeSpeakerName(name)
	if normalized == "" {
		return nil, apperrors.ErrInvalidArgument("speaker name is required")
	}

	if _, err := s.store.Speakers().FindByName(ctx, normalized); err != nil {
		if errors.Is(err, entities.ErrSpeakerNotFound) {
			return nil, apperrors.ErrSpeakerNotFound(normalized)
		}
		return nil, apperrors.ErrDBQueryFailed("find speaker", err)
	}

	meetings, err := s.store.Meetings().ListRecent(ctx, 0)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}

	result := analytics.SpeakerEngagementTrend(normalized, meetings)
	return &result, nil
}

// Compare contrasts the second meeting against the first
func (s *meetingService) Compare(ctx context.Context, first, second uuid.UUID) (*analytics.MeetingComparison, error) {
	a, err := s.analyzedMeeting(ctx, first)
	if err != nil {
		return nil, err
	}
	b, err := s.analyzedMeeting(ctx, second)
	if err != nil {
		return nil, err
	}

	comparison := analytics.CompareMeetings(a, b)
	return &comparison, nil
}

func (s *meetingService) analyzedMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.store.Meetings().FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, id)
	}
	if !m.Analyzed() {
		return nil, apperrors.ErrMeetingNotAnalyzed(id.String())
	}
	return m, nil
}

// Risks runs the risk detectors over the most recent window and filters the catalog
func (s *meetingService) Risks(ctx context.Context, filter RiskFilter) (*RiskOverview, error) {
	if filter.Severity != "" && !filterableSeverities[filter.Severity] {
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown severity %q", filter.Severity))
	}
	if filter.Category != "" && !filterableCategories[filter.Category] {
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown category %q", filter.Category))
	}

	window := filter.Window
	if window <= 0 {
		window = s.opts.ReportWindow
	}
	meetings, err := s.store.Meetings().ListRecent(ctx, window)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}

	report := analytics.NewRiskDetector(meetings).Comprehensive()
	catalog := analytics.RiskCatalog(report)

	return &RiskOverview{
		MeetingCount: len(meetings),
		Overall:      report.Overall,
		Counts:       analytics.CountBySeverity(catalog),
		Risks:        analytics.FilterRisks(catalog, filter.Severity, filter.Category),
	}, nil
}
