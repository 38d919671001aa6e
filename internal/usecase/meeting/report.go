package meeting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/metrics"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
)

// TeamReport builds the executive view over the most recent window of meetings
func (s *meetingService) TeamReport(ctx context.Context, window int) (*analytics.TeamReport, error) {
	if window <= 0 {
		window = s.opts.ReportWindow
	}
	meetings, err := s.store.Meetings().ListRecent(ctx, window)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return s.cachedReport(ctx, "window:"+strconv.Itoa(window), meetings)
}

// ReportForPeriod builds the executive view over meetings dated in [from, to)
func (s *meetingService) ReportForPeriod(ctx context.Context, from, to time.Time) (*analytics.TeamReport, error) {
	if !from.Before(to) {
		return nil, apperrors.ErrInvalidArgument("period start must be before its end")
	}
	meetings, err := s.store.Meetings().ListBetween(ctx, from, to)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	scope := fmt.Sprintf("period:%d:%d", from.Unix(), to.Unix())
	return s.cachedReport(ctx, scope, meetings)
}

// reportFingerprint identifies a report by its scope and the exact state of every
// meeting in it; adding, deleting or re-analyzing a meeting changes the key
func reportFingerprint(scope string, meetings []*entities.Meeting) string {
	h := sha256.New()
	h.Write([]byte(scope))
	for _, m := range meetings {
		fmt.Fprintf(h, "|%s@%d", m.ID, m.UpdatedAt.UnixNano())
	}
	return "report:" + hex.EncodeToString(h.Sum(nil))
}

func (s *meetingService) cachedReport(ctx context.Context, scope string, meetings []*entities.Meeting) (*analytics.TeamReport, error) {
	key := reportFingerprint(scope, meetings)

	if report, ok := s.lookupReport(ctx, key); ok {
		s.metrics.ObserveCache(true)
		return report, nil
	}
	if s.cache != nil {
		s.metrics.ObserveCache(false)
	}

	report, err := analytics.BuildTeamReport(ctx, meetings)
	if err != nil {
		s.metrics.ObserveReport(metrics.OutcomeFailed, nil)
		return nil, apperrors.ErrAnalysisFailed(err)
	}
	var health *float64
	if report.Health.Level != analytics.HealthUnknown {
		health = &report.Health.Score
	}
	s.metrics.ObserveReport(metrics.OutcomeSuccess, health)

	s.storeReport(ctx, key, report)
	return report, nil
}

func (s *meetingService) lookupReport(ctx context.Context, key string) (*analytics.TeamReport, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.Error(apperrors.ErrCacheFailed("get", err)))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var report analytics.TeamReport
	if err := json.Unmarshal(data, &report); err != nil {
		s.logger.Warn("discarding unreadable cached report", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &report, true
}

func (s *meetingService) storeReport(ctx context.Context, key string, report *analytics.TeamReport) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("report not cached", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(apperrors.ErrCacheFailed("set", err)))
	}
}
