package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// RiskLevel grades a detector's outcome, or the overall blend
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
	RiskUnknown  RiskLevel = "unknown"
)

const needMoreMeetings = "Need more meetings for analysis"

// RiskAssessment is the common shape of every detector's result
type RiskAssessment struct {
	Level          RiskLevel `json:"risk_level" yaml:"risk_level"`
	Score          int       `json:"risk_score" yaml:"risk_score"`
	Indicators     []string  `json:"indicators" yaml:"indicators"`
	Recommendation string    `json:"recommendation" yaml:"recommendation"`
}

// DominanceAssessment adds who dominated the most recent meeting
type DominanceAssessment struct {
	RiskAssessment   `yaml:",inline"`
	DominantSpeakers []string `json:"dominant_speakers" yaml:"dominant_speakers"`
	TopParticipation float64  `json:"top_participation" yaml:"top_participation"`
}

// AtRiskSpeaker is a speaker whose recent engagement fell or stayed low
type AtRiskSpeaker struct {
	Name              string  `json:"name" yaml:"name"`
	CurrentEngagement float64 `json:"current_engagement" yaml:"current_engagement"`
	DeclinePercentage float64 `json:"decline_percentage" yaml:"decline_percentage"`
}

// DisengagementAssessment lists the speakers flagged as disengaging
type DisengagementAssessment struct {
	RiskAssessment `yaml:",inline"`
	AtRiskSpeakers []AtRiskSpeaker `json:"at_risk_speakers" yaml:"at_risk_speakers"`
}

// OverallRisk is the weighted blend of conflict, burnout and dominance
type OverallRisk struct {
	Score float64   `json:"score" yaml:"score"`
	Level RiskLevel `json:"level" yaml:"level"`
	Color string    `json:"color" yaml:"color"`
}

// RiskReport bundles every detector and the overall blend
type RiskReport struct {
	Conflict      RiskAssessment          `json:"conflict_risk" yaml:"conflict_risk"`
	Burnout       RiskAssessment          `json:"burnout_risk" yaml:"burnout_risk"`
	Dominance     DominanceAssessment     `json:"dominance_issues" yaml:"dominance_issues"`
	Disengagement DisengagementAssessment `json:"disengagement_risk" yaml:"disengagement_risk"`
	Overall       OverallRisk             `json:"overall_risk_score" yaml:"overall_risk_score"`
}

// levelBand maps a score to a level; recommendations are indexed by level
type levelBand struct {
	high, medium    int
	recommendations map[RiskLevel]string
}

func (b levelBand) grade(score int) (RiskLevel, string) {
	level := RiskNone
	switch {
	case score >= b.high:
		level = RiskHigh
	case score >= b.medium:
		level = RiskMedium
	case score > 0:
		level = RiskLow
	}
	return level, b.recommendations[level]
}

var (
	conflictBand = levelBand{high: 50, medium: 30, recommendations: map[RiskLevel]string{
		RiskHigh:   "URGENT: Schedule 1-on-1s to address team tensions. Consider conflict resolution facilitation.",
		RiskMedium: "Monitor closely. Consider team retrospective to surface concerns.",
		RiskLow:    "Minor concerns detected. Keep monitoring trends.",
		RiskNone:   "No conflict risks detected. Team communication appears healthy.",
	}}
	burnoutBand = levelBand{high: 60, medium: 35, recommendations: map[RiskLevel]string{
		RiskHigh:   "URGENT: Team showing burnout signs. Consider workload reduction and wellness check-ins.",
		RiskMedium: "Watch for burnout. Consider lighter meeting schedule and workload assessment.",
		RiskLow:    "Some fatigue indicators. Monitor team energy levels.",
		RiskNone:   "No burnout risks detected. Team engagement appears healthy.",
	}}
	dominanceBand = levelBand{high: 50, medium: 30, recommendations: map[RiskLevel]string{
		RiskHigh:   "Conversation dominated by few people. Actively solicit input from quieter members.",
		RiskMedium: "Consider round-robin speaking order or explicit turn-taking.",
		RiskLow:    "Minor imbalance detected. Encourage broader participation.",
		RiskNone:   "Participation appears balanced across team members.",
	}}
)

// RiskDetector runs the rule-based detectors over a meeting series
type RiskDetector struct {
	meetings []*entities.Meeting
	trends   *TrendAnalyzer
}

// NewRiskDetector creates a detector over meetings ordered by date
func NewRiskDetector(meetings []*entities.Meeting) *RiskDetector {
	trends := NewTrendAnalyzer(meetings)
	return &RiskDetector{
		meetings: trends.Meetings(),
		trends:   trends,
	}
}

func unknownRisk(recommendation string) RiskAssessment {
	return RiskAssessment{
		Level:          RiskUnknown,
		Indicators:     []string{},
		Recommendation: recommendation,
	}
}

// Conflict looks for falling sentiment, negative tone and worsening balance
func (d *RiskDetector) Conflict() RiskAssessment {
	if len(d.meetings) < MinRiskMeetings {
		return unknownRisk(needMoreMeetings)
	}

	sentiment := d.trends.Sentiment()
	participation := d.trends.Participation()

	indicators := []string{}
	score := 0

	if sentiment.Trend == TrendDeclining && sentiment.ChangePercentage < SentimentDeclineThreshold {
		indicators = append(indicators, fmt.Sprintf("Sentiment declined by %.1f%%", math.Abs(sentiment.ChangePercentage)))
		score += 30
	}
	if sentiment.CurrentAvg < NegativeSentimentThreshold {
		indicators = append(indicators, fmt.Sprintf("Recent sentiment is negative (%.2f)", sentiment.CurrentAvg))
		score += 25
	}
	if participation.CurrentAvg < ParticipationImbalanceThreshold {
		indicators = append(indicators, fmt.Sprintf("Low participation balance (%.2f)", participation.CurrentAvg))
		score += 20
	}
	if participation.Trend == TrendDeclining {
		indicators = append(indicators, "Participation becoming more unbalanced")
		score += 15
	}

	level, recommendation := conflictBand.grade(score)
	return RiskAssessment{Level: level, Score: score, Indicators: indicators, Recommendation: recommendation}
}

// Burnout looks for falling engagement and volume alongside declining sentiment
func (d *RiskDetector) Burnout() RiskAssessment {
	if len(d.meetings) < MinRiskMeetings {
		return unknownRisk(needMoreMeetings)
	}

	engagement := d.trends.Engagement()
	volume := d.trends.MessageVolume()
	sentiment := d.trends.Sentiment()

	indicators := []string{}
	score := 0

	if engagement.Trend == TrendDeclining && engagement.ChangePercentage < EngagementDeclineThreshold {
		indicators = append(indicators, fmt.Sprintf("Engagement dropped %.1f%%", math.Abs(engagement.ChangePercentage)))
		score += 35
	}
	if volume.Trend == TrendDecreasing && volume.ChangePercentage < VolumeDeclineThreshold {
		indicators = append(indicators, fmt.Sprintf("Communication volume down %.1f%%", math.Abs(volume.ChangePercentage)))
		score += 25
	}
	if sentiment.Trend == TrendDeclining {
		indicators = append(indicators, "Team sentiment declining")
		score += 20
	}
	if engagement.CurrentAvg < LowEngagementThreshold {
		indicators = append(indicators, fmt.Sprintf("Low team engagement (%.1f/100)", engagement.CurrentAvg))
		score += 20
	}

	level, recommendation := burnoutBand.grade(score)
	return RiskAssessment{Level: level, Score: score, Indicators: indicators, Recommendation: recommendation}
}

// Dominance inspects the most recent meeting's participation split
func (d *RiskDetector) Dominance() DominanceAssessment {
	if len(d.meetings) == 0 {
		return DominanceAssessment{RiskAssessment: unknownRisk(needMoreMeetings), DominantSpeakers: []string{}}
	}

	recent := d.meetings[len(d.meetings)-1]
	if len(recent.Metrics) < 2 {
		return DominanceAssessment{
			RiskAssessment:   unknownRisk("Need at least two speakers for analysis"),
			DominantSpeakers: []string{},
		}
	}

	metrics := append([]entities.SpeakerMetric(nil), recent.Metrics...)
	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].ParticipationPercentage != metrics[j].ParticipationPercentage {
			return metrics[i].ParticipationPercentage > metrics[j].ParticipationPercentage
		}
		return metrics[i].SpeakerName() < metrics[j].SpeakerName()
	})

	top := metrics[0]
	topName := top.SpeakerName()
	result := DominanceAssessment{
		DominantSpeakers: []string{},
		TopParticipation: round(top.ParticipationPercentage, 2),
	}
	indicators := []string{}
	score := 0

	switch {
	case top.ParticipationPercentage > DominantSpeakerThreshold:
		indicators = append(indicators, fmt.Sprintf("%s speaks %.1f%% of the time", topName, top.ParticipationPercentage))
		result.DominantSpeakers = append(result.DominantSpeakers, topName)
		score += 40
	case top.ParticipationPercentage > HeavySpeakerThreshold:
		indicators = append(indicators, fmt.Sprintf("%s dominates conversation (%.1f%%)", topName, top.ParticipationPercentage))
		result.DominantSpeakers = append(result.DominantSpeakers, topName)
		score += 25
	}

	topTwo := metrics[0].ParticipationPercentage + metrics[1].ParticipationPercentage
	if topTwo > TopTwoSpeakersThreshold {
		indicators = append(indicators, fmt.Sprintf("Top 2 speakers control %.1f%% of conversation", topTwo))
		score += 20
	}

	if balance := recent.BalanceValue(); balance < ParticipationImbalanceThreshold {
		indicators = append(indicators, fmt.Sprintf("Very unbalanced participation (score: %.2f)", balance))
		score += 15
	}

	level, recommendation := dominanceBand.grade(score)
	result.RiskAssessment = RiskAssessment{Level: level, Score: score, Indicators: indicators, Recommendation: recommendation}
	return result
}

// Disengagement flags speakers whose engagement fell over the last meetings
func (d *RiskDetector) Disengagement() DisengagementAssessment {
	if len(d.meetings) < MinRiskMeetings {
		return DisengagementAssessment{RiskAssessment: unknownRisk(needMoreMeetings), AtRiskSpeakers: []AtRiskSpeaker{}}
	}

	window := d.meetings[len(d.meetings)-DisengagementWindow:]

	order := []string{}
	series := make(map[string][]float64)
	for _, m := range window {
		for _, metric := range m.Metrics {
			name := metric.SpeakerName()
			if _, seen := series[name]; !seen {
				order = append(order, name)
			}
			series[name] = append(series[name], metric.EngagementScore)
		}
	}

	atRisk := []AtRiskSpeaker{}
	for _, name := range order {
		scores := series[name]
		if len(scores) < 2 {
			continue
		}

		first, second := splitWindows(scores)
		secondAvg := mean(second)
		decline := percentChange(mean(first), secondAvg)

		if decline < DisengagementDecline || secondAvg < DisengagementFloor {
			atRisk = append(atRisk, AtRiskSpeaker{
				Name:              name,
				CurrentEngagement: round(secondAvg, 1),
				DeclinePercentage: round(decline, 1),
			})
		}
	}

	result := DisengagementAssessment{AtRiskSpeakers: atRisk}
	result.Indicators = []string{}
	for _, s := range atRisk {
		result.Indicators = append(result.Indicators,
			fmt.Sprintf("%s engagement at %.1f (%.1f%% change)", s.Name, s.CurrentEngagement, s.DeclinePercentage))
	}

	switch {
	case len(atRisk) >= 2:
		result.Level = RiskHigh
		result.Recommendation = "Multiple team members showing disengagement. Schedule 1-on-1 check-ins."
	case len(atRisk) == 1:
		result.Level = RiskMedium
		result.Recommendation = fmt.Sprintf("%s may be disengaging. Consider a check-in.", atRisk[0].Name)
	default:
		result.Level = RiskNone
		result.Recommendation = "All team members appear engaged."
	}
	if len(atRisk) > 0 {
		result.Score = DisengagementDefaultScore
	}

	return result
}

// OverallFrom blends detector scores. Disengagement is not part of the blend.
func OverallFrom(conflict, burnout RiskAssessment, dominance DominanceAssessment) OverallRisk {
	total := float64(conflict.Score)*ConflictWeight +
		float64(burnout.Score)*BurnoutWeight +
		float64(dominance.Score)*DominanceWeight

	overall := OverallRisk{Score: round(total, 1)}
	switch {
	case total >= 50:
		overall.Level, overall.Color = RiskCritical, "danger"
	case total >= 35:
		overall.Level, overall.Color = RiskHigh, "warning"
	case total >= 15:
		overall.Level, overall.Color = RiskMedium, "info"
	default:
		overall.Level, overall.Color = RiskLow, "success"
	}
	return overall
}

// Comprehensive runs every detector
func (d *RiskDetector) Comprehensive() RiskReport {
	report := RiskReport{
		Conflict:      d.Conflict(),
		Burnout:       d.Burnout(),
		Dominance:     d.Dominance(),
		Disengagement: d.Disengagement(),
	}
	report.Overall = OverallFrom(report.Conflict, report.Burnout, report.Dominance)
	return report
}
