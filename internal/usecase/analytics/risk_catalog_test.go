package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRiskReport() RiskReport {
	return RiskReport{
		Conflict: RiskAssessment{Level: RiskHigh, Score: 70, Indicators: []string{"a", "b"}, Recommendation: "talk"},
		Burnout:  RiskAssessment{Level: RiskLow, Score: 20, Indicators: []string{"Team sentiment declining"}},
		Dominance: DominanceAssessment{
			RiskAssessment: RiskAssessment{Level: RiskNone},
		},
		Disengagement: DisengagementAssessment{
			RiskAssessment: RiskAssessment{Level: RiskMedium, Indicators: []string{"Bob engagement at 20.0 (-50.0% change)"}},
			AtRiskSpeakers: []AtRiskSpeaker{{Name: "Bob"}},
		},
	}
}

func TestRiskCatalog(t *testing.T) {
	got := RiskCatalog(sampleRiskReport())

	require.Len(t, got, 3)
	assert.Equal(t, CategoryConflict, got[0].Category)
	assert.Equal(t, "a, b", got[0].Explanation)
	assert.Equal(t, "talk", got[0].Recommendation)
	assert.Equal(t, CategoryBurnout, got[1].Category)
	assert.Equal(t, CategoryDisengagement, got[2].Category)
	assert.Equal(t, DisengagementDefaultScore, got[2].Score)
}

func TestRiskCatalog_SkipsUnknown(t *testing.T) {
	report := RiskReport{
		Conflict:      unknownRisk(needMoreMeetings),
		Burnout:       unknownRisk(needMoreMeetings),
		Dominance:     DominanceAssessment{RiskAssessment: unknownRisk(needMoreMeetings)},
		Disengagement: DisengagementAssessment{RiskAssessment: unknownRisk(needMoreMeetings)},
	}

	assert.Empty(t, RiskCatalog(report))
}

func TestFilterRisks(t *testing.T) {
	entries := RiskCatalog(sampleRiskReport())

	assert.Len(t, FilterRisks(entries, "", ""), 3)
	assert.Len(t, FilterRisks(entries, RiskHigh, ""), 1)
	assert.Len(t, FilterRisks(entries, "", CategoryBurnout), 1)
	assert.Empty(t, FilterRisks(entries, RiskHigh, CategoryBurnout))

	assert.Equal(t, SeverityCounts{High: 1, Medium: 1, Low: 1}, CountBySeverity(entries))
}
