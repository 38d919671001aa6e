package analytics

import (
	"sort"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// TrendLabel is the direction of a metric between the earlier and recent windows
type TrendLabel string

const (
	TrendImproving        TrendLabel = "improving"
	TrendDeclining        TrendLabel = "declining"
	TrendStable           TrendLabel = "stable"
	TrendIncreasing       TrendLabel = "increasing"
	TrendDecreasing       TrendLabel = "decreasing"
	TrendInsufficientData TrendLabel = "insufficient_data"
)

const dateLayout = "2006-01-02"

// DataPoint is one meeting's value for a charted series
type DataPoint struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// TrendResult is the outcome of a two-window comparison
type TrendResult struct {
	Trend            TrendLabel  `json:"trend" yaml:"trend"`
	ChangePercentage float64     `json:"change_percentage" yaml:"change_percentage"`
	CurrentAvg       float64     `json:"current_avg" yaml:"current_avg"`
	PreviousAvg      float64     `json:"previous_avg" yaml:"previous_avg"`
	DataPoints       []DataPoint `json:"data_points" yaml:"data_points"`
}

// TrendReport bundles every trend family
type TrendReport struct {
	Sentiment     TrendResult `json:"sentiment" yaml:"sentiment"`
	Participation TrendResult `json:"participation" yaml:"participation"`
	Engagement    TrendResult `json:"engagement" yaml:"engagement"`
	MessageVolume TrendResult `json:"message_volume" yaml:"message_volume"`
	MeetingCount  int         `json:"meeting_count" yaml:"meeting_count"`
}

type trendBand struct {
	threshold float64
	rising    TrendLabel
	falling   TrendLabel
}

func (b trendBand) classify(change float64) TrendLabel {
	switch {
	case change > b.threshold:
		return b.rising
	case change < -b.threshold:
		return b.falling
	default:
		return TrendStable
	}
}

var (
	sentimentBand     = trendBand{SentimentTrendThreshold, TrendImproving, TrendDeclining}
	participationBand = trendBand{ParticipationTrendThreshold, TrendImproving, TrendDeclining}
	engagementBand    = trendBand{EngagementTrendThreshold, TrendImproving, TrendDeclining}
	volumeBand        = trendBand{VolumeTrendThreshold, TrendIncreasing, TrendDecreasing}
	speakerBand       = trendBand{SpeakerTrendThreshold, TrendImproving, TrendDeclining}
)

// TrendAnalyzer compares the earlier and recent halves of a meeting series
type TrendAnalyzer struct {
	meetings []*entities.Meeting
}

// NewTrendAnalyzer creates an analyzer over meetings ordered by date.
// The input slice is not modified.
func NewTrendAnalyzer(meetings []*entities.Meeting) *TrendAnalyzer {
	return &TrendAnalyzer{meetings: sortByDate(meetings)}
}

// Meetings returns the date-ordered meetings
func (a *TrendAnalyzer) Meetings() []*entities.Meeting {
	return a.meetings
}

// Sentiment trends the meetings' average sentiment
func (a *TrendAnalyzer) Sentiment() TrendResult {
	return a.analyze(func(m *entities.Meeting) float64 {
		return m.SentimentValue()
	}, 4, sentimentBand)
}

// Participation trends the meetings' participation balance
func (a *TrendAnalyzer) Participation() TrendResult {
	return a.analyze(func(m *entities.Meeting) float64 {
		return m.BalanceValue()
	}, 4, participationBand)
}

// Engagement trends the mean speaker engagement per meeting
func (a *TrendAnalyzer) Engagement() TrendResult {
	return a.analyze(MeetingEngagement, 2, engagementBand)
}

// MessageVolume trends the number of messages per meeting
func (a *TrendAnalyzer) MessageVolume() TrendResult {
	return a.analyze(func(m *entities.Meeting) float64 {
		return float64(m.TotalMessages)
	}, 1, volumeBand)
}

// Comprehensive runs every trend family
func (a *TrendAnalyzer) Comprehensive() TrendReport {
	return TrendReport{
		Sentiment:     a.Sentiment(),
		Participation: a.Participation(),
		Engagement:    a.Engagement(),
		MessageVolume: a.MessageVolume(),
		MeetingCount:  len(a.meetings),
	}
}

func (a *TrendAnalyzer) analyze(value func(*entities.Meeting) float64, places int, band trendBand) TrendResult {
	if len(a.meetings) < MinTrendMeetings {
		return insufficientTrend()
	}

	points := make([]DataPoint, 0, len(a.meetings))
	values := make([]float64, 0, len(a.meetings))
	for _, m := range a.meetings {
		v := value(m)
		points = append(points, DataPoint{Date: m.Date.Format(dateLayout), Value: v})
		values = append(values, v)
	}

	earlier, recent := splitWindows(values)
	earlierAvg, recentAvg := mean(earlier), mean(recent)
	change := percentChange(earlierAvg, recentAvg)

	return TrendResult{
		Trend:            band.classify(change),
		ChangePercentage: round(change, 2),
		CurrentAvg:       round(recentAvg, places),
		PreviousAvg:      round(earlierAvg, places),
		DataPoints:       points,
	}
}

// MeetingEngagement is the mean engagement score of a meeting's speakers, rounded to two decimals
func MeetingEngagement(m *entities.Meeting) float64 {
	if len(m.Metrics) == 0 {
		return 0
	}
	scores := make([]float64, 0, len(m.Metrics))
	for _, metric := range m.Metrics {
		scores = append(scores, metric.EngagementScore)
	}
	return round(mean(scores), 2)
}

func insufficientTrend() TrendResult {
	return TrendResult{
		Trend:      TrendInsufficientData,
		DataPoints: []DataPoint{},
	}
}

func sortByDate(meetings []*entities.Meeting) []*entities.Meeting {
	sorted := make([]*entities.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m != nil {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
