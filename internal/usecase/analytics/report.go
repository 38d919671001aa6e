package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// MeetingSummary is the short form of a meeting inside a team report
type MeetingSummary struct {
	ID                   string                  `json:"id" yaml:"id"`
	Title                string                  `json:"title" yaml:"title"`
	Date                 string                  `json:"date" yaml:"date"`
	TotalMessages        int                     `json:"total_messages" yaml:"total_messages"`
	AvgSentiment         float64                 `json:"avg_sentiment" yaml:"avg_sentiment"`
	SentimentLabel       entities.SentimentLabel `json:"sentiment_label" yaml:"sentiment_label"`
	ParticipationBalance float64                 `json:"participation_balance" yaml:"participation_balance"`
}

// TeamReport is the executive view over a window of meetings
type TeamReport struct {
	MeetingCount int              `json:"meeting_count" yaml:"meeting_count"`
	Meetings     []MeetingSummary `json:"meetings" yaml:"meetings"`
	Trends       TrendReport      `json:"trends" yaml:"trends"`
	Risks        RiskReport       `json:"risks" yaml:"risks"`
	RiskCatalog  []RiskEntry      `json:"risk_catalog" yaml:"risk_catalog"`
	Health       HealthIndex      `json:"health" yaml:"health"`
	Insights     Insights         `json:"insights" yaml:"insights"`
	GeneratedAt  time.Time        `json:"generated_at" yaml:"generated_at"`
}

// SummarizeMeeting returns the short form of an analyzed meeting
func SummarizeMeeting(m *entities.Meeting) MeetingSummary {
	return MeetingSummary{
		ID:                   m.ID.String(),
		Title:                m.Title,
		Date:                 m.Date.Format(dateLayout),
		TotalMessages:        m.TotalMessages,
		AvgSentiment:         m.SentimentValue(),
		SentimentLabel:       m.LabelValue(),
		ParticipationBalance: m.BalanceValue(),
	}
}

// BuildTeamReport runs trends, risks and health concurrently over committed
// meetings, then composes the narrative from their results.
func BuildTeamReport(ctx context.Context, meetings []*entities.Meeting) (*TeamReport, error) {
	sorted := sortByDate(meetings)

	var (
		trends TrendReport
		risks  RiskReport
		health HealthIndex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		trends = NewTrendAnalyzer(sorted).Comprehensive()
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		risks = NewRiskDetector(sorted).Comprehensive()
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		health = CalculateHealthIndex(sorted)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]MeetingSummary, 0, len(sorted))
	for _, m := range sorted {
		summaries = append(summaries, SummarizeMeeting(m))
	}

	return &TeamReport{
		MeetingCount: len(sorted),
		Meetings:     summaries,
		Trends:       trends,
		Risks:        risks,
		RiskCatalog:  RiskCatalog(risks),
		Health:       health,
		Insights:     NewInsightsGenerator(sorted, trends, risks).Generate(),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
