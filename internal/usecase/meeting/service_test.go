package meeting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/adapter/repository/memory"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/cache"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/metrics"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
	"github.com/johnquangdev/team-pulse/pkg/sentiment"
)

// keywordProvider scores "great" as positive and "bad" as negative
var keywordProvider = sentiment.ProviderFunc(func(text string) sentiment.Scores {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "great"):
		return sentiment.Scores{Compound: 0.6}
	case strings.Contains(lower, "bad"):
		return sentiment.Scores{Compound: -0.6}
	default:
		return sentiment.Scores{Compound: 0}
	}
})

const planningTranscript = `Alice: This plan looks great to me
bob: I think the timeline is bad
Alice: Can we ship it next week?
Carol: Sounds fine`

type harness struct {
	store   *memory.Store
	cache   *cache.MemoryStore
	metrics *metrics.AnalysisMetrics
	svc     Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:   memory.NewStore(),
		cache:   cache.NewMemoryStore(),
		metrics: metrics.NewAnalysisMetrics("test"),
	}
	t.Cleanup(func() { h.cache.Close() })
	h.svc = NewService(h.store, keywordProvider, h.cache, h.metrics, nil, fastOptions())
	return h
}

func fastOptions() Options {
	return Options{
		ReportWindow:         5,
		CacheTTL:             time.Minute,
		RetryInitialInterval: time.Millisecond,
		RetryMaxElapsed:      time.Second,
	}
}

func meetingDay(n int) time.Time {
	return time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC).AddDate(0, 0, n)
}

func analyze(t *testing.T, svc Service, day int, text string) *MeetingDetail {
	t.Helper()
	detail, err := svc.Analyze(context.Background(), MeetingInput{
		Title:      "Planning",
		Date:       meetingDay(day),
		Transcript: text,
	})
	require.NoError(t, err)
	return detail
}

func TestAnalyzePersistsMeeting(t *testing.T) {
	h := newHarness(t)
	duration := 30

	detail, err := h.svc.Analyze(context.Background(), MeetingInput{
		Title:           "Planning",
		Date:            meetingDay(0),
		DurationMinutes: &duration,
		Transcript:      planningTranscript,
	})
	require.NoError(t, err)

	assert.Equal(t, "Planning", detail.Title)
	assert.Equal(t, "2025-06-02", detail.Date)
	assert.Equal(t, &duration, detail.DurationMinutes)
	assert.Equal(t, 4, detail.TotalMessages)
	assert.InDelta(t, 0.0, detail.AvgSentiment, 1e-9)
	assert.Equal(t, entities.SentimentNeutral, detail.SentimentLabel)
	assert.Equal(t, entities.SentimentDistribution{Positive: 1, Neutral: 2, Negative: 1}, detail.SentimentDistribution)

	require.Len(t, detail.Speakers, 3)
	assert.Equal(t, "Alice", detail.Speakers[0].Speaker)
	assert.Equal(t, 50.0, detail.Speakers[0].ParticipationPercentage)
	assert.Equal(t, 1, detail.Speakers[0].QuestionCount)
	assert.Equal(t, "Bob", detail.Speakers[1].Speaker)

	require.Len(t, detail.Messages, 4)
	assert.Equal(t, 1, detail.Messages[0].Sequence)
	assert.Equal(t, "Bob", detail.Messages[1].Speaker)
	assert.Equal(t, -0.6, detail.Messages[1].SentimentScore)
	assert.True(t, detail.Messages[2].IsQuestion)

	speakers, err := h.store.Speakers().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, speakers, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(h.metrics.MessagesAnalyzed))
}

func TestAnalyzeReusesSpeakersAcrossMeetings(t *testing.T) {
	h := newHarness(t)
	analyze(t, h.svc, 0, planningTranscript)
	analyze(t, h.svc, 7, "ALICE: Morning all\nCarol: Morning Alice")

	speakers, err := h.store.Speakers().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, speakers, 3)
}

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Analyze(context.Background(), MeetingInput{Transcript: planningTranscript})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"title is required", "date is required"}, appErr.Reasons)
}

func TestAnalyzeRejectsInvalidTranscript(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		reason     string
	}{
		{"empty", "   \n ", transcript.ReasonEmpty},
		{"too short", "Al: hi\nBo: yo", transcript.ReasonTooShort},
		{"no speakers", "this transcript has no speaker labels at all", transcript.ReasonSpeakerFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.svc.Analyze(context.Background(), MeetingInput{
				Title:      "Sync",
				Date:       meetingDay(0),
				Transcript: tt.transcript,
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_TRANSCRIPT_VALIDATION_FAILED))

			appErr, _ := apperrors.AsAppError(err)
			assert.Equal(t, []string{tt.reason}, appErr.Reasons)

			meetings, err := h.store.Meetings().ListRecent(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, meetings)
		})
	}
}

func TestAnalyzeReportsParseFailure(t *testing.T) {
	h := newHarness(t)

	// timestamp layout is detected, but no line starts with its timestamp
	_, err := h.svc.Analyze(context.Background(), MeetingInput{
		Title:      "Sync",
		Date:       meetingDay(0),
		Transcript: "at 10:00 Alice: hello there\nat 10:05 Bob: hi Alice",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_TRANSCRIPT_PARSE_FAILED))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeRejected)))
}

// failingMetricsStore fails every metric write, inside or outside a transaction
type failingMetricsStore struct {
	repositories.Store
}

type failingMetrics struct {
	repositories.SpeakerMetricRepository
}

func (failingMetrics) ReplaceForMeeting(context.Context, uuid.UUID, []*entities.SpeakerMetric) error {
	return errors.New("disk full")
}

func (s failingMetricsStore) Metrics() repositories.SpeakerMetricRepository {
	return failingMetrics{s.Store.Metrics()}
}

func (s failingMetricsStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.WithinTransaction(ctx, func(tx repositories.Store) error {
		return fn(failingMetricsStore{tx})
	})
}

func TestAnalyzeRollsBackOnFailure(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(failingMetricsStore{store}, keywordProvider, nil, nil, nil, fastOptions())

	_, err := svc.Analyze(context.Background(), MeetingInput{
		Title:      "Planning",
		Date:       meetingDay(0),
		Transcript: planningTranscript,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_DB_TRANSACTION_FAILED))

	ctx := context.Background()
	meetings, err := store.Meetings().ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, meetings)

	speakers, err := store.Speakers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, speakers)
}

// conflictingStore aborts the first n transactions with a serialization failure
// after their writes have been made
type conflictingStore struct {
	*memory.Store
	conflicts int
	attempts  int
}

func (s *conflictingStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	s.attempts++
	return s.Store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if err := fn(tx); err != nil {
			return err
		}
		if s.conflicts > 0 {
			s.conflicts--
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		}
		return nil
	})
}

func TestAnalyzeRetriesTransientConflicts(t *testing.T) {
	store := &conflictingStore{Store: memory.NewStore(), conflicts: 2}
	m := metrics.NewAnalysisMetrics("test")
	svc := NewService(store, keywordProvider, nil, m, nil, fastOptions())

	detail, err := svc.Analyze(context.Background(), MeetingInput{
		Title:      "Planning",
		Date:       meetingDay(0),
		Transcript: planningTranscript,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, store.attempts)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersistRetriesTotal))

	meetings, err := store.Meetings().ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, detail.ID, meetings[0].ID.String())
}

func TestGetAndDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	detail := analyze(t, h.svc, 0, planningTranscript)
	id := uuid.MustParse(detail.ID)

	got, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, detail.ID, got.ID)

	require.NoError(t, h.svc.Delete(ctx, id))

	_, err = h.svc.Get(ctx, id)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_MEETING_NOT_FOUND))

	err = h.svc.Delete(ctx, id)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_MEETING_NOT_FOUND))

	speakers, err := h.store.Speakers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, speakers, 3)
}

func TestListNewestFirst(t *testing.T) {
	h := newHarness(t)
	analyze(t, h.svc, 0, planningTranscript)
	analyze(t, h.svc, 7, planningTranscript)
	analyze(t, h.svc, 14, planningTranscript)

	summaries, err := h.svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2025-06-16", summaries[0].Date)
	assert.Equal(t, "2025-06-09", summaries[1].Date)
}

func TestTeamReportIsCachedUntilMeetingsChange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	analyze(t, h.svc, 0, planningTranscript)
	analyze(t, h.svc, 7, "Alice: This is great news\nBob: Great work everyone")

	first, err := h.svc.TeamReport(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, first.MeetingCount)
	assert.Equal(t, "2025-06-02", first.Meetings[0].Date)

	second, err := h.svc.TeamReport(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Health.Score, second.Health.Score)
	assert.Equal(t, first.Insights.ExecutiveSummary, second.Insights.ExecutiveSummary)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ReportCacheTotal.WithLabelValues("hit")))

	analyze(t, h.svc, 14, planningTranscript)
	third, err := h.svc.TeamReport(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, third.MeetingCount)
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.ReportCacheTotal.WithLabelValues("miss")))
}

func TestTeamReportWithoutMeetings(t *testing.T) {
	h := newHarness(t)

	report, err := h.svc.TeamReport(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, report.MeetingCount)
	assert.Equal(t, analytics.HealthUnknown, report.Health.Level)
	assert.Equal(t, "No meeting data available for analysis.", report.Insights.Banner.MainMessage)
}

func TestReportForPeriod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	analyze(t, h.svc, 0, planningTranscript)
	analyze(t, h.svc, 7, planningTranscript)
	analyze(t, h.svc, 30, planningTranscript)

	report, err := h.svc.ReportForPeriod(ctx, meetingDay(-1), meetingDay(10))
	require.NoError(t, err)
	assert.Equal(t, 2, report.MeetingCount)

	_, err = h.svc.ReportForPeriod(ctx, meetingDay(10), meetingDay(-1))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT))
}

func TestSpeakerTrend(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	analyze(t, h.svc, 0, planningTranscript)
	analyze(t, h.svc, 7, "Alice: Morning all\nCarol: Morning Alice")
	analyze(t, h.svc, 14, "Carol: Quick update today\nDave: Thanks Carol")

	trend, err := h.svc.SpeakerTrend(ctx, "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", trend.Speaker)
	assert.Len(t, trend.DataPoints, 2)

	_, err = h.svc.SpeakerTrend(ctx, "Mallory")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_SPEAKER_NOT_FOUND))

	_, err = h.svc.SpeakerTrend(ctx, " ")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT))
}

func TestCompare(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := analyze(t, h.svc, 0, planningTranscript)
	b := analyze(t, h.svc, 7, "Alice: This is great news\nBob: Great work everyone")

	comparison, err := h.svc.Compare(ctx, uuid.MustParse(a.ID), uuid.MustParse(b.ID))
	require.NoError(t, err)
	assert.Equal(t, a.ID, comparison.FirstID)
	assert.Equal(t, b.ID, comparison.SecondID)
	assert.InDelta(t, 0.6, comparison.SentimentChange, 1e-9)
	assert.Equal(t, -2, comparison.MessageChange)

	_, err = h.svc.Compare(ctx, uuid.MustParse(a.ID), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_MEETING_NOT_FOUND))
}

func TestCompareRejectsUnanalyzedMeeting(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := analyze(t, h.svc, 0, planningTranscript)

	bare := entities.NewMeeting("Imported", meetingDay(3), "Alice: hi\nBob: hello")
	require.NoError(t, h.store.Meetings().Create(ctx, bare))

	_, err := h.svc.Compare(ctx, uuid.MustParse(a.ID), bare.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_MEETING_NOT_ANALYZED))
}

func TestRisks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Risks(ctx, RiskFilter{Severity: "catastrophic"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT))

	_, err = h.svc.Risks(ctx, RiskFilter{Category: "morale"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrorCode_INVALID_ARGUMENT))

	dominated := "Alice: I have a long update about the release\n" +
		"Alice: Then the migration plan\n" +
		"Alice: And finally the budget\n" +
		"Bob: ok"
	analyze(t, h.svc, 0, dominated)
	analyze(t, h.svc, 7, dominated)
	analyze(t, h.svc, 14, dominated)

	overview, err := h.svc.Risks(ctx, RiskFilter{Category: analytics.CategoryDominance})
	require.NoError(t, err)
	assert.Equal(t, 3, overview.MeetingCount)
	require.Len(t, overview.Risks, 1)
	assert.Equal(t, analytics.CategoryDominance, overview.Risks[0].Category)
	assert.Equal(t, analytics.RiskHigh, overview.Risks[0].Level)
	assert.GreaterOrEqual(t, overview.Counts.High, 1)
}
