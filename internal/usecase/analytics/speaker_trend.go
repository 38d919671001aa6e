package analytics

import (
	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
)

// SpeakerDataPoint is one meeting's figures for a single speaker
type SpeakerDataPoint struct {
	Date          string  `json:"date" yaml:"date"`
	Engagement    float64 `json:"engagement" yaml:"engagement"`
	Participation float64 `json:"participation" yaml:"participation"`
	Sentiment     float64 `json:"sentiment" yaml:"sentiment"`
}

// SpeakerTrendResult tracks a speaker's engagement across the meetings they attended
type SpeakerTrendResult struct {
	Speaker          string             `json:"speaker" yaml:"speaker"`
	Trend            TrendLabel         `json:"trend" yaml:"trend"`
	ChangePercentage float64            `json:"change_percentage" yaml:"change_percentage"`
	DataPoints       []SpeakerDataPoint `json:"data_points" yaml:"data_points"`
}

// SpeakerEngagementTrend applies the two-window comparison to one speaker.
// Meetings without a metric row for the speaker are ignored.
func SpeakerEngagementTrend(speaker string, meetings []*entities.Meeting) SpeakerTrendResult {
	name := transcript.NormalizeSpeakerName(speaker)
	result := SpeakerTrendResult{
		Speaker:    name,
		DataPoints: []SpeakerDataPoint{},
	}

	for _, m := range sortByDate(meetings) {
		metric := findSpeakerMetric(m, name)
		if metric == nil {
			continue
		}
		result.DataPoints = append(result.DataPoints, SpeakerDataPoint{
			Date:          m.Date.Format(dateLayout),
			Engagement:    metric.EngagementScore,
			Participation: metric.ParticipationPercentage,
			Sentiment:     metric.SentimentValue(),
		})
	}

	if len(result.DataPoints) < MinTrendMeetings {
		result.Trend = TrendInsufficientData
		return result
	}

	scores := make([]float64, 0, len(result.DataPoints))
	for _, p := range result.DataPoints {
		scores = append(scores, p.Engagement)
	}
	earlier, recent := splitWindows(scores)
	change := percentChange(mean(earlier), mean(recent))

	result.Trend = speakerBand.classify(change)
	result.ChangePercentage = round(change, 2)
	return result
}

func findSpeakerMetric(m *entities.Meeting, name string) *entities.SpeakerMetric {
	for i := range m.Metrics {
		if m.Metrics[i].SpeakerName() == name {
			return &m.Metrics[i]
		}
	}
	return nil
}
