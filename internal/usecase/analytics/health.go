package analytics

import "github.com/johnquangdev/team-pulse/internal/domain/entities"

// HealthLevel bands the team health score
type HealthLevel string

const (
	HealthExcellent HealthLevel = "excellent"
	HealthGood      HealthLevel = "good"
	HealthFair      HealthLevel = "fair"
	HealthPoor      HealthLevel = "poor"
	HealthUnknown   HealthLevel = "unknown"
)

// HealthComponent is one weighted input to the index
type HealthComponent struct {
	Score   float64    `json:"score" yaml:"score"`
	Trend   TrendLabel `json:"trend" yaml:"trend"`
	Current *float64   `json:"current,omitempty" yaml:"current,omitempty"`
}

// HealthComponents are the four inputs to the index
type HealthComponents struct {
	Sentiment     HealthComponent `json:"sentiment" yaml:"sentiment"`
	Participation HealthComponent `json:"participation" yaml:"participation"`
	Engagement    HealthComponent `json:"engagement" yaml:"engagement"`
	Volume        HealthComponent `json:"volume" yaml:"volume"`
}

// HealthIndex is the composite 0-100 team health score
type HealthIndex struct {
	Score      float64           `json:"score" yaml:"score"`
	Level      HealthLevel       `json:"level" yaml:"level"`
	Color      string            `json:"color" yaml:"color"`
	Components *HealthComponents `json:"components,omitempty" yaml:"components,omitempty"`
}

// CalculateHealthIndex scores a meeting series. Fewer than two meetings yields
// score 0 with level unknown.
func CalculateHealthIndex(meetings []*entities.Meeting) HealthIndex {
	if len(meetings) < MinTrendMeetings {
		return unknownHealth()
	}
	return HealthFromTrends(NewTrendAnalyzer(meetings).Comprehensive())
}

// HealthFromTrends scores an already computed trend report
func HealthFromTrends(trends TrendReport) HealthIndex {
	if trends.MeetingCount < MinTrendMeetings {
		return unknownHealth()
	}

	sentimentScore := (trends.Sentiment.CurrentAvg + 1) * 50
	participationScore := trends.Participation.CurrentAvg * 100
	engagementScore := trends.Engagement.CurrentAvg

	var volumeScore float64
	switch trends.MessageVolume.Trend {
	case TrendStable:
		volumeScore = VolumeStableScore
	case TrendIncreasing:
		volumeScore = VolumeIncreasingScore
	default:
		volumeScore = VolumeDecreasingScore
	}

	score := sentimentScore*HealthSentimentWeight +
		participationScore*HealthParticipationWeight +
		engagementScore*HealthEngagementWeight +
		volumeScore*HealthVolumeWeight

	index := HealthIndex{
		Score: round(score, 1),
		Components: &HealthComponents{
			Sentiment: HealthComponent{
				Score:   round(sentimentScore, 1),
				Trend:   trends.Sentiment.Trend,
				Current: ptr(trends.Sentiment.CurrentAvg),
			},
			Participation: HealthComponent{
				Score:   round(participationScore, 1),
				Trend:   trends.Participation.Trend,
				Current: ptr(trends.Participation.CurrentAvg),
			},
			Engagement: HealthComponent{
				Score:   round(engagementScore, 1),
				Trend:   trends.Engagement.Trend,
				Current: ptr(trends.Engagement.CurrentAvg),
			},
			Volume: HealthComponent{
				Score: volumeScore,
				Trend: trends.MessageVolume.Trend,
			},
		},
	}

	switch {
	case score >= 80:
		index.Level, index.Color = HealthExcellent, "success"
	case score >= 65:
		index.Level, index.Color = HealthGood, "info"
	case score >= 50:
		index.Level, index.Color = HealthFair, "warning"
	default:
		index.Level, index.Color = HealthPoor, "danger"
	}

	return index
}

func unknownHealth() HealthIndex {
	return HealthIndex{Score: 0, Level: HealthUnknown, Color: "secondary"}
}
