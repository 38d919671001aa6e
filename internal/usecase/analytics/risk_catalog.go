package analytics

import "strings"

// RiskCategory groups catalog entries for filtering
type RiskCategory string

const (
	CategoryConflict      RiskCategory = "conflict"
	CategoryBurnout       RiskCategory = "burnout"
	CategoryDominance     RiskCategory = "dominance"
	CategoryDisengagement RiskCategory = "disengagement"
)

// RiskEntry is one detected risk in flat, filterable form
type RiskEntry struct {
	Type           string       `json:"type" yaml:"type"`
	Category       RiskCategory `json:"category" yaml:"category"`
	Level          RiskLevel    `json:"level" yaml:"level"`
	Score          int          `json:"score" yaml:"score"`
	Explanation    string       `json:"explanation" yaml:"explanation"`
	Impact         string       `json:"impact" yaml:"impact"`
	Recommendation string       `json:"recommendation" yaml:"recommendation"`
}

// SeverityCounts tallies catalog entries per level
type SeverityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

func reportable(level RiskLevel) bool {
	return level != RiskNone && level != RiskUnknown
}

// RiskCatalog flattens a report into entries, skipping detectors that found
// nothing or lacked data
func RiskCatalog(report RiskReport) []RiskEntry {
	entries := []RiskEntry{}

	if reportable(report.Conflict.Level) {
		entries = append(entries, RiskEntry{
			Type:           "Team Conflict",
			Category:       CategoryConflict,
			Level:          report.Conflict.Level,
			Score:          report.Conflict.Score,
			Explanation:    strings.Join(report.Conflict.Indicators, ", "),
			Impact:         "May lead to decreased collaboration and team cohesion",
			Recommendation: report.Conflict.Recommendation,
		})
	}
	if reportable(report.Burnout.Level) {
		entries = append(entries, RiskEntry{
			Type:           "Team Burnout",
			Category:       CategoryBurnout,
			Level:          report.Burnout.Level,
			Score:          report.Burnout.Score,
			Explanation:    strings.Join(report.Burnout.Indicators, ", "),
			Impact:         "Could result in reduced productivity and team turnover",
			Recommendation: report.Burnout.Recommendation,
		})
	}
	if reportable(report.Dominance.Level) {
		entries = append(entries, RiskEntry{
			Type:           "Conversation Dominance",
			Category:       CategoryDominance,
			Level:          report.Dominance.Level,
			Score:          report.Dominance.Score,
			Explanation:    strings.Join(report.Dominance.Indicators, ", "),
			Impact:         "Quieter team members may feel unheard or disengaged",
			Recommendation: report.Dominance.Recommendation,
		})
	}
	if reportable(report.Disengagement.Level) {
		entries = append(entries, RiskEntry{
			Type:           "Team Disengagement",
			Category:       CategoryDisengagement,
			Level:          report.Disengagement.Level,
			Score:          DisengagementDefaultScore,
			Explanation:    strings.Join(report.Disengagement.Indicators, ", "),
			Impact:         "May indicate burnout or role dissatisfaction",
			Recommendation: report.Disengagement.Recommendation,
		})
	}

	return entries
}

// FilterRisks keeps entries matching severity and category; empty values match all
func FilterRisks(entries []RiskEntry, severity RiskLevel, category RiskCategory) []RiskEntry {
	filtered := make([]RiskEntry, 0, len(entries))
	for _, e := range entries {
		if severity != "" && e.Level != severity {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// CountBySeverity tallies entries per level
func CountBySeverity(entries []RiskEntry) SeverityCounts {
	var counts SeverityCounts
	for _, e := range entries {
		switch e.Level {
		case RiskHigh:
			counts.High++
		case RiskMedium:
			counts.Medium++
		case RiskLow:
			counts.Low++
		}
	}
	return counts
}
