package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/adapter/repository"
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/domain/repositories"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/cache"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/metrics"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
	"github.com/johnquangdev/team-pulse/pkg/logger"
	"github.com/johnquangdev/team-pulse/pkg/sentiment"
	pkgvalidator "github.com/johnquangdev/team-pulse/pkg/validator"
)

const dateLayout = "2006-01-02"

// Service defines the meeting analysis use cases
type Service interface {
	Analyze(ctx context.Context, input MeetingInput) (*MeetingDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*MeetingDetail, error)
	List(ctx context.Context, limit int) ([]analytics.MeetingSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TeamReport(ctx context.Context, window int) (*analytics.TeamReport, error)
	ReportForPeriod(ctx context.Context, from, to time.Time) (*analytics.TeamReport, error)
	SpeakerTrend(ctx context.Context, name string) (*analytics.SpeakerTrendResult, error)
	Compare(ctx context.Context, first, second uuid.UUID) (*analytics.MeetingComparison, error)
	Risks(ctx context.Context, filter RiskFilter) (*RiskOverview, error)
}

// MeetingInput is one transcript submitted for analysis
type MeetingInput struct {
	Title           string    `validate:"required,max=255"`
	Date            time.Time `validate:"-"`
	DurationMinutes *int      `validate:"omitempty,min=1"`
	Transcript      string
}

// Options tunes caching, report windows and persistence retries
type Options struct {
	ReportWindow         int
	CacheTTL             time.Duration
	RetryInitialInterval time.Duration
	RetryMaxElapsed      time.Duration
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return Options{
		ReportWindow:         5,
		CacheTTL:             10 * time.Minute,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxElapsed:      5 * time.Second,
	}
}

type meetingService struct {
	store     repositories.Store
	parser    *transcript.Parser
	validator *transcript.Validator
	inputs    *pkgvalidator.CustomValidator
	analyzer  *analytics.MessageAnalyzer
	cache     cache.Store
	metrics   *metrics.AnalysisMetrics
	logger    *zap.Logger
	opts      Options
}

// NewService constructs the meeting service. cache and metrics may be nil.
func NewService(
	store repositories.Store,
	provider sentiment.Provider,
	reportCache cache.Store,
	analysisMetrics *metrics.AnalysisMetrics,
	log *zap.Logger,
	opts Options,
) Service {
	defaults := DefaultOptions()
	if opts.ReportWindow <= 0 {
		opts.ReportWindow = defaults.ReportWindow
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = defaults.RetryInitialInterval
	}
	if opts.RetryMaxElapsed <= 0 {
		opts.RetryMaxElapsed = defaults.RetryMaxElapsed
	}

	return &meetingService{
		store:     store,
		parser:    transcript.NewParser(),
		validator: transcript.NewValidator(),
		inputs:    pkgvalidator.New(),
		analyzer:  analytics.NewMessageAnalyzer(provider),
		cache:     reportCache,
		metrics:   analysisMetrics,
		logger:    logger.OrNop(log),
		opts:      opts,
	}
}

// Analyze validates, parses and scores a transcript, then persists the meeting,
// its messages and its speaker metrics in one transaction
func (s *meetingService) Analyze(ctx context.Context, input MeetingInput) (*MeetingDetail, error) {
	started := time.Now()

	if reasons := s.inputReasons(input); len(reasons) > 0 {
		s.metrics.ObserveAnalysis(metrics.OutcomeRejected, started, 0)
		appErr := apperrors.ErrInvalidArgument("Invalid meeting input")
		appErr.Reasons = reasons
		return nil, appErr
	}

	if reasons := s.validator.Validate(input.Transcript); len(reasons) > 0 {
		s.metrics.ObserveAnalysis(metrics.OutcomeRejected, started, 0)
		s.logger.Info("transcript rejected",
			zap.String("title", input.Title),
			zap.Strings("reasons", reasons),
		)
		return nil, apperrors.ErrValidationFailed(reasons)
	}

	utterances := s.parser.Parse(input.Transcript)
	if len(utterances) == 0 {
		s.metrics.ObserveAnalysis(metrics.OutcomeRejected, started, 0)
		return nil, apperrors.ErrParseFailed()
	}

	messages := s.analyzer.AnalyzeUtterances(utterances)
	analysis := analytics.ComputeMeetingMetrics(messages)

	meetingID, err := s.persist(ctx, input, messages, analysis)
	if err != nil {
		s.metrics.ObserveAnalysis(metrics.OutcomeFailed, started, 0)
		s.logger.Error("❌ Failed to persist meeting analysis",
			zap.String("title", input.Title),
			zap.Error(err),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.ErrDBTransactionFailed(err)
	}

	s.metrics.ObserveAnalysis(metrics.OutcomeSuccess, started, len(messages))
	s.logger.Info("✅ Meeting analyzed",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("messages", analysis.Aggregate.TotalMessages),
		zap.Int("speakers", len(analysis.Speakers)),
		zap.Float64("avg_sentiment", analysis.Aggregate.AvgSentiment),
		zap.Duration("elapsed", time.Since(started)),
	)

	return s.Get(ctx, meetingID)
}

func (s *meetingService) inputReasons(input MeetingInput) []string {
	reasons := s.inputs.Reasons(input)
	if input.Date.IsZero() {
		reasons = append(reasons, "date is required")
	}
	return reasons
}

// persist writes one analysis pass atomically, retrying transient conflicts
func (s *meetingService) persist(
	ctx context.Context,
	input MeetingInput,
	messages []analytics.AnalyzedMessage,
	analysis analytics.MeetingAnalysis,
) (uuid.UUID, error) {
	meetingID := uuid.New()
	attempt := 0

	operation := func() error {
		attempt++
		err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
			return writeAnalysis(ctx, tx, meetingID, input, messages, analysis)
		})
		if err == nil {
			return nil
		}
		if repository.IsRetryable(err) {
			s.metrics.ObserveRetry()
			s.logger.Warn("⚠️ Transient conflict while persisting analysis, retrying",
				zap.String("meeting_id", meetingID.String()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.RetryInitialInterval
	bo.MaxElapsedTime = s.opts.RetryMaxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return uuid.Nil, err
	}
	return meetingID, nil
}

func writeAnalysis(
	ctx context.Context,
	tx repositories.Store,
	meetingID uuid.UUID,
	input MeetingInput,
	messages []analytics.AnalyzedMessage,
	analysis analytics.MeetingAnalysis,
) error {
	meeting := entities.NewMeeting(input.Title, input.Date.UTC(), input.Transcript)
	meeting.ID = meetingID
	meeting.DurationMinutes = input.DurationMinutes
	if err := tx.Meetings().Create(ctx, meeting); err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}

	speakerIDs := make(map[string]uuid.UUID, len(analysis.Speakers))
	for _, stats := range analysis.Speakers {
		speaker, err := tx.Speakers().FindOrCreate(ctx, stats.Speaker)
		if err != nil {
			return fmt.Errorf("resolve speaker %q: %w", stats.Speaker, err)
		}
		speakerIDs[stats.Speaker] = speaker.ID
	}

	rows := make([]*entities.Message, 0, len(messages))
	for _, msg := range messages {
		score := msg.SentimentScore
		rows = append(rows, &entities.Message{
			MeetingID:      meetingID,
			SpeakerID:      speakerIDs[msg.Speaker],
			Content:        msg.Content,
			Timestamp:      msg.Timestamp,
			SequenceOrder:  msg.Sequence,
			WordCount:      msg.WordCount,
			SentimentScore: &score,
			IsQuestion:     msg.IsQuestion,
		})
	}
	if err := tx.Messages().BulkCreate(ctx, rows); err != nil {
		return fmt.Errorf("store messages: %w", err)
	}

	metricRows := make([]*entities.SpeakerMetric, 0, len(analysis.Speakers))
	for _, stats := range analysis.Speakers {
		avg := stats.AvgSentiment
		metricRows = append(metricRows, &entities.SpeakerMetric{
			MeetingID:               meetingID,
			SpeakerID:               speakerIDs[stats.Speaker],
			TotalMessages:           stats.TotalMessages,
			TotalWords:              stats.TotalWords,
			ParticipationPercentage: stats.ParticipationPercentage,
			AvgWordsPerMessage:      stats.AvgWordsPerMessage,
			EngagementScore:         stats.EngagementScore,
			AvgSentiment:            &avg,
			PositiveCount:           stats.PositiveCount,
			NeutralCount:            stats.NeutralCount,
			NegativeCount:           stats.NegativeCount,
			QuestionCount:           stats.QuestionCount,
		})
	}
	if err := tx.Metrics().ReplaceForMeeting(ctx, meetingID, metricRows); err != nil {
		return fmt.Errorf("store speaker metrics: %w", err)
	}

	agg := analysis.Aggregate
	avgSentiment := agg.AvgSentiment
	balance := agg.ParticipationBalance
	label := agg.SentimentLabel
	meeting.TotalMessages = agg.TotalMessages
	meeting.TotalWords = agg.TotalWords
	meeting.AvgSentiment = &avgSentiment
	meeting.ParticipationBalance = &balance
	meeting.SentimentLabel = &label
	meeting.SentimentDistribution = datatypes.NewJSONType(agg.SentimentDistribution)
	if err := tx.Meetings().UpdateAggregates(ctx, meeting); err != nil {
		return fmt.Errorf("update aggregates: %w", err)
	}
	return nil
}

// mapStoreError converts repository sentinels into application errors
func mapStoreError(err error, id uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entities.ErrMeetingNotFound):
		return apperrors.ErrMeetingNotFound(id.String())
	default:
		return apperrors.ErrInternal(err)
	}
}
