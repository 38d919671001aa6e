package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
)

// Severity ranks recommended actions and priorities
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

const (
	maxStrengths  = 3
	maxRisks      = 3
	maxActions    = 4
	maxPriorities = 3

	noMeetingData = "No meeting data available for analysis."
)

// PrimaryRisk is a medium or high risk explained for leadership
type PrimaryRisk struct {
	Type        string    `json:"type" yaml:"type"`
	Level       RiskLevel `json:"level" yaml:"level"`
	Score       int       `json:"score" yaml:"score"`
	Explanation string    `json:"explanation" yaml:"explanation"`
	Impact      string    `json:"impact" yaml:"impact"`
}

// RecommendedAction is a concrete step with its motivation
type RecommendedAction struct {
	Priority       Severity `json:"priority" yaml:"priority"`
	Action         string   `json:"action" yaml:"action"`
	Reason         string   `json:"reason" yaml:"reason"`
	ExpectedImpact string   `json:"expected_impact" yaml:"expected_impact"`
}

// TeamPriority is one of the most urgent items for the team
type TeamPriority struct {
	Rank        int      `json:"rank" yaml:"rank"`
	Title       string   `json:"title" yaml:"title"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Action      string   `json:"action" yaml:"action"`
}

// Banner is the headline narrative
type Banner struct {
	MainMessage      string  `json:"main_message" yaml:"main_message"`
	PrimaryConcern   *string `json:"primary_concern" yaml:"primary_concern"`
	RecommendedFocus string  `json:"recommended_focus" yaml:"recommended_focus"`
}

// Insights is the full narrative layer
type Insights struct {
	ExecutiveSummary   string              `json:"executive_summary" yaml:"executive_summary"`
	KeyStrengths       []string            `json:"key_strengths" yaml:"key_strengths"`
	PrimaryRisks       []PrimaryRisk       `json:"primary_risks" yaml:"primary_risks"`
	RecommendedActions []RecommendedAction `json:"recommended_actions" yaml:"recommended_actions"`
	TopPriorities      []TeamPriority      `json:"top_priorities" yaml:"top_priorities"`
	Banner             Banner              `json:"banner" yaml:"banner"`
}

// InsightsGenerator turns trends and risks into narrative. It performs no
// analysis of its own; identical inputs give identical output.
type InsightsGenerator struct {
	meetings []*entities.Meeting
	trends   TrendReport
	risks    RiskReport
}

// NewInsightsGenerator creates a generator over the given results
func NewInsightsGenerator(meetings []*entities.Meeting, trends TrendReport, risks RiskReport) *InsightsGenerator {
	return &InsightsGenerator{
		meetings: sortByDate(meetings),
		trends:   trends,
		risks:    risks,
	}
}

// Generate builds every insight section
func (g *InsightsGenerator) Generate() Insights {
	return Insights{
		ExecutiveSummary:   g.ExecutiveSummary(),
		KeyStrengths:       g.KeyStrengths(),
		PrimaryRisks:       g.PrimaryRisks(),
		RecommendedActions: g.RecommendedActions(),
		TopPriorities:      g.TopPriorities(),
		Banner:             g.Banner(),
	}
}

func (g *InsightsGenerator) multi() bool {
	return len(g.meetings) >= MinTrendMeetings
}

// ExecutiveSummary describes sentiment, participation and engagement in one paragraph
func (g *InsightsGenerator) ExecutiveSummary() string {
	switch len(g.meetings) {
	case 0:
		return noMeetingData
	case 1:
		return singleMeetingSummary(g.meetings[0])
	}

	t := g.trends
	parts := []string{}

	switch t.Sentiment.Trend {
	case TrendImproving:
		parts = append(parts, fmt.Sprintf("Team morale is improving, with sentiment rising %.1f%% over recent meetings", abs(t.Sentiment.ChangePercentage)))
	case TrendDeclining:
		parts = append(parts, fmt.Sprintf("Team morale has declined %.1f%%, indicating possible frustration or disagreement", abs(t.Sentiment.ChangePercentage)))
	default:
		parts = append(parts, "Team sentiment remains stable")
	}

	switch t.Participation.Trend {
	case TrendDeclining:
		parts = append(parts, fmt.Sprintf("participation balance has decreased %.1f%%, suggesting rising dominance patterns", abs(t.Participation.ChangePercentage)))
	case TrendImproving:
		parts = append(parts, "participation is becoming more balanced across the team")
	}

	switch t.Engagement.Trend {
	case TrendDeclining:
		parts = append(parts, fmt.Sprintf("team engagement has dropped %.1f%%, which may indicate fatigue or disinterest", abs(t.Engagement.ChangePercentage)))
	case TrendImproving:
		parts = append(parts, "team members are becoming more actively engaged")
	}

	var summary string
	if len(parts) >= 2 {
		summary = fmt.Sprintf("%s, but %s", parts[0], parts[1])
		if len(parts) >= 3 {
			summary += fmt.Sprintf(". Additionally, %s", parts[2])
		}
	} else {
		summary = strings.Join(parts, ". ")
	}

	return capitalizeFirst(summary) + "."
}

func singleMeetingSummary(m *entities.Meeting) string {
	parts := []string{}

	switch s := m.SentimentValue(); {
	case s > 0.3:
		parts = append(parts, "The meeting had a positive and constructive tone")
	case s < -0.1:
		parts = append(parts, "The meeting showed signs of tension or disagreement")
	default:
		parts = append(parts, "The meeting maintained a neutral, professional tone")
	}

	switch b := m.BalanceValue(); {
	case b > 0.7:
		parts = append(parts, "with well-balanced participation across team members")
	case b < 0.4:
		parts = append(parts, "though a few individuals dominated most of the conversation")
	}

	return strings.Join(parts, " ") + "."
}

// KeyStrengths lists up to three positive patterns
func (g *InsightsGenerator) KeyStrengths() []string {
	if !g.multi() {
		return g.singleMeetingStrengths()
	}

	t := g.trends
	strengths := []string{}
	if t.Sentiment.CurrentAvg > 0.2 {
		strengths = append(strengths, "Team maintains positive and constructive communication")
	}
	if t.Participation.CurrentAvg > 0.65 {
		strengths = append(strengths, "Participation is well-distributed across team members")
	}
	if t.Engagement.CurrentAvg > 65 {
		strengths = append(strengths, "Team members demonstrate strong active engagement")
	}
	if t.Sentiment.Trend == TrendImproving {
		strengths = append(strengths, "Team morale is trending upward")
	}
	if t.Engagement.Trend == TrendImproving {
		strengths = append(strengths, "Team engagement is increasing over time")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Team maintains consistent meeting attendance and participation")
	}
	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

func (g *InsightsGenerator) singleMeetingStrengths() []string {
	if len(g.meetings) == 0 {
		return []string{}
	}

	m := g.meetings[0]
	strengths := []string{}
	if m.SentimentValue() > 0.2 {
		strengths = append(strengths, "Positive and constructive dialogue throughout the meeting")
	}
	if m.BalanceValue() > 0.6 {
		strengths = append(strengths, "Balanced participation across team members")
	}

	questions := 0
	for _, metric := range m.Metrics {
		questions += metric.QuestionCount
	}
	if float64(questions)/float64(max(m.TotalMessages, 1)) > 0.15 {
		strengths = append(strengths, "High level of inquiry and active problem-solving")
	}

	if len(strengths) == 0 {
		return []string{"Team completed the meeting as scheduled"}
	}
	return strengths
}

func elevated(level RiskLevel) bool {
	return level == RiskHigh || level == RiskMedium
}

// PrimaryRisks explains the medium and high risks, highest score first
func (g *InsightsGenerator) PrimaryRisks() []PrimaryRisk {
	if !g.multi() {
		return []PrimaryRisk{}
	}

	r := g.risks
	risks := []PrimaryRisk{}

	if elevated(r.Conflict.Level) {
		risks = append(risks, PrimaryRisk{
			Type:        "Conflict Risk",
			Level:       r.Conflict.Level,
			Score:       r.Conflict.Score,
			Explanation: strings.Join(firstN(r.Conflict.Indicators, 2), " "),
			Impact:      "May lead to decreased collaboration and team cohesion",
		})
	}
	if elevated(r.Burnout.Level) {
		risks = append(risks, PrimaryRisk{
			Type:        "Burnout Risk",
			Level:       r.Burnout.Level,
			Score:       r.Burnout.Score,
			Explanation: strings.Join(firstN(r.Burnout.Indicators, 2), " "),
			Impact:      "Could result in reduced productivity and team turnover",
		})
	}
	if elevated(r.Dominance.Level) {
		risks = append(risks, PrimaryRisk{
			Type:        "Conversation Dominance",
			Level:       r.Dominance.Level,
			Score:       r.Dominance.Score,
			Explanation: "Conversation dominated by " + strings.Join(firstN(r.Dominance.DominantSpeakers, 2), ", "),
			Impact:      "Quieter team members may feel unheard or disengaged",
		})
	}
	if elevated(r.Disengagement.Level) && len(r.Disengagement.AtRiskSpeakers) > 0 {
		risks = append(risks, PrimaryRisk{
			Type:        "Team Disengagement",
			Level:       r.Disengagement.Level,
			Score:       DisengagementDefaultScore,
			Explanation: atRiskNames(r.Disengagement.AtRiskSpeakers) + " showing declining engagement patterns",
			Impact:      "May indicate burnout or role dissatisfaction",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Score > risks[j].Score
	})
	return firstN(risks, maxRisks)
}

// RecommendedActions proposes up to four actions, most severe first
func (g *InsightsGenerator) RecommendedActions() []RecommendedAction {
	if !g.multi() {
		return g.singleMeetingActions()
	}

	t, r := g.trends, g.risks
	actions := []RecommendedAction{}

	if t.Sentiment.Trend == TrendDeclining {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityHigh,
			Action:         "Schedule a team retrospective",
			Reason:         fmt.Sprintf("Sentiment has declined %.1f%% over recent meetings", abs(t.Sentiment.ChangePercentage)),
			ExpectedImpact: "Surface and address team concerns before they escalate",
		})
	}
	if t.Participation.Trend == TrendDeclining {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityHigh,
			Action:         "Implement round-robin speaking format",
			Reason:         "Participation balance is decreasing, suggesting emerging dominance patterns",
			ExpectedImpact: "Ensure all voices are heard and valued",
		})
	}
	if elevated(r.Dominance.Level) && len(r.Dominance.DominantSpeakers) > 0 {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityMedium,
			Action:         "Explicitly invite input from quieter team members",
			Reason:         fmt.Sprintf("%s dominates %.1f%% of discussion time", r.Dominance.DominantSpeakers[0], r.Dominance.TopParticipation),
			ExpectedImpact: "Build psychological safety and inclusive culture",
		})
	}
	if t.Engagement.Trend == TrendDeclining {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityHigh,
			Action:         "Conduct 1-on-1 check-ins with team members",
			Reason:         fmt.Sprintf("Team engagement has dropped %.1f%%", abs(t.Engagement.ChangePercentage)),
			ExpectedImpact: "Identify and address individual concerns or blockers",
		})
	}
	if r.Burnout.Level == RiskHigh {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityCritical,
			Action:         "Review workload distribution and meeting frequency",
			Reason:         "Multiple burnout indicators detected across the team",
			ExpectedImpact: "Prevent team burnout and maintain sustainable pace",
		})
	}
	if len(r.Disengagement.AtRiskSpeakers) > 0 {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityHigh,
			Action:         "Meet individually with " + atRiskNames(r.Disengagement.AtRiskSpeakers),
			Reason:         "These members show declining engagement patterns",
			ExpectedImpact: "Re-engage team members and address potential issues",
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return severityRank[actions[i].Priority] < severityRank[actions[j].Priority]
	})
	return firstN(actions, maxActions)
}

func (g *InsightsGenerator) singleMeetingActions() []RecommendedAction {
	actions := []RecommendedAction{}
	if len(g.meetings) == 0 {
		return actions
	}

	m := g.meetings[0]
	if m.BalanceValue() < 0.5 {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityMedium,
			Action:         "Implement structured turn-taking in next meeting",
			Reason:         "Participation was imbalanced in this meeting",
			ExpectedImpact: "Ensure all team members contribute equally",
		})
	}
	if m.SentimentValue() < 0 {
		actions = append(actions, RecommendedAction{
			Priority:       SeverityHigh,
			Action:         "Follow up on topics that generated tension",
			Reason:         "Meeting showed negative sentiment",
			ExpectedImpact: "Resolve disagreements before they grow",
		})
	}
	return actions
}

// TopPriorities returns up to three urgent items, ranked from 1
func (g *InsightsGenerator) TopPriorities() []TeamPriority {
	priorities := []TeamPriority{}
	if !g.multi() {
		return priorities
	}

	t, r := g.trends, g.risks
	add := func(p TeamPriority) {
		p.Rank = len(priorities) + 1
		priorities = append(priorities, p)
	}

	if r.Burnout.Level == RiskHigh {
		add(TeamPriority{
			Title:       "Address Team Burnout Signals",
			Severity:    SeverityCritical,
			Description: "Multiple indicators suggest team fatigue. Engagement down, communication decreasing.",
			Action:      "Review workload and reduce meeting frequency",
		})
	}
	if elevated(r.Conflict.Level) {
		add(TeamPriority{
			Title:       "Resolve Rising Team Tensions",
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("Sentiment declined %.1f%% with increasing negative interactions", abs(t.Sentiment.ChangePercentage)),
			Action:      "Schedule team retrospective to surface concerns",
		})
	}
	if r.Dominance.Level == RiskHigh && len(r.Dominance.DominantSpeakers) > 0 {
		add(TeamPriority{
			Title:       "Rebalance Meeting Participation",
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("%s controls %.1f%% of discussion", r.Dominance.DominantSpeakers[0], r.Dominance.TopParticipation),
			Action:      "Use round-robin format to ensure all voices heard",
		})
	}
	if t.Engagement.Trend == TrendDeclining && t.Engagement.ChangePercentage < -15 {
		add(TeamPriority{
			Title:       "Boost Team Engagement",
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Engagement dropped %.1f%% over recent meetings", abs(t.Engagement.ChangePercentage)),
			Action:      "Conduct 1-on-1s to identify blockers",
		})
	}

	return firstN(priorities, maxPriorities)
}

// Banner picks the headline narrative, primary concern and recommended focus
func (g *InsightsGenerator) Banner() Banner {
	switch len(g.meetings) {
	case 0:
		return Banner{
			MainMessage:      noMeetingData,
			RecommendedFocus: "Analyze a meeting transcript to start tracking team health.",
		}
	case 1:
		m := g.meetings[0]
		return Banner{
			MainMessage: fmt.Sprintf("First meeting analyzed. Team showed %s sentiment with %d exchanges. Baseline established for future trend detection.",
				m.LabelValue(), m.TotalMessages),
			RecommendedFocus: "Continue monitoring participation balance and engagement patterns.",
		}
	}

	banner := Banner{
		MainMessage:      firstMatch(mainNarrativeRules, g.trends, g.risks),
		RecommendedFocus: firstMatch(focusRules, g.trends, g.risks),
	}
	if concern := firstMatch(concernRules, g.trends, g.risks); concern != "" {
		banner.PrimaryConcern = &concern
	}
	return banner
}

// narrativeRule renders its template when its predicate holds.
// Rules are evaluated in order and the first match wins.
type narrativeRule struct {
	when   func(t TrendReport, r RiskReport) bool
	render func(t TrendReport, r RiskReport) string
}

func always(TrendReport, RiskReport) bool { return true }

func fixed(s string) func(TrendReport, RiskReport) string {
	return func(TrendReport, RiskReport) string { return s }
}

func firstMatch(rules []narrativeRule, t TrendReport, r RiskReport) string {
	for _, rule := range rules {
		if rule.when(t, r) {
			return rule.render(t, r)
		}
	}
	return ""
}

var mainNarrativeRules = []narrativeRule{
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendDeclining && t.Engagement.Trend == TrendDeclining
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Your team is showing early warning signs of collaborative fatigue. While %.1f%% sentiment decline could indicate frustration with processes or decisions, the %.1f%% drop in engagement suggests team members may be withdrawing from active participation.",
				abs(t.Sentiment.ChangePercentage), abs(t.Engagement.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendImproving && t.Engagement.Trend == TrendImproving
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Team collaboration is strengthening. Sentiment has improved %.1f%% and engagement is up %.1f%%, indicating team members feel more positive and are participating more actively in discussions.",
				abs(t.Sentiment.ChangePercentage), abs(t.Engagement.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendImproving && t.Engagement.Trend == TrendDeclining
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Your team shows a complex pattern: morale is improving (%.1f%% increase) but active engagement has dropped %.1f%%. This often signals that while the team feels better about outcomes, some members may be experiencing fatigue or reduced ownership.",
				abs(t.Sentiment.ChangePercentage), abs(t.Engagement.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendDeclining && t.Engagement.Trend == TrendImproving
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Team members are engaging more actively (%.1f%% increase), but sentiment has declined %.1f%%. This pattern often indicates passionate disagreement or frustration with project direction: high energy but growing tension.",
				abs(t.Engagement.ChangePercentage), abs(t.Sentiment.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Participation.Trend == TrendDeclining && t.Participation.CurrentAvg < ParticipationImbalanceThreshold
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Conversation dynamics are becoming increasingly imbalanced. Participation equity has dropped %.1f%%, suggesting a few voices are dominating while others are contributing less. This can lead to disengagement among quieter team members.",
				abs(t.Participation.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendStable && t.Sentiment.CurrentAvg < 0
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Team sentiment has stabilized but remains in negative territory (score: %.2f). While there's no active decline, the persistent low morale suggests underlying issues that haven't been addressed.",
				t.Sentiment.CurrentAvg)
		},
	},
	{
		when:   always,
		render: fixed("Team collaboration appears stable with consistent sentiment and engagement levels. Monitoring continues to detect any emerging patterns or shifts in team dynamics."),
	},
}

var concernRules = []narrativeRule{
	{
		when: func(_ TrendReport, r RiskReport) bool {
			return r.Burnout.Level == RiskHigh && len(r.Burnout.Indicators) > 0
		},
		render: func(_ TrendReport, r RiskReport) string {
			return fmt.Sprintf("Burnout risk detected: %s This requires immediate leadership attention.", r.Burnout.Indicators[0])
		},
	},
	{
		when: func(_ TrendReport, r RiskReport) bool {
			return r.Conflict.Level == RiskHigh && len(r.Conflict.Indicators) > 0
		},
		render: func(_ TrendReport, r RiskReport) string {
			return fmt.Sprintf("Conflict indicators emerging: %s Consider facilitating team discussion.", r.Conflict.Indicators[0])
		},
	},
	{
		when: func(_ TrendReport, r RiskReport) bool {
			return r.Dominance.Level == RiskHigh && len(r.Dominance.DominantSpeakers) > 0
		},
		render: func(_ TrendReport, r RiskReport) string {
			return fmt.Sprintf("%s is dominating %.0f%% of conversations, potentially silencing other voices.",
				r.Dominance.DominantSpeakers[0], r.Dominance.TopParticipation)
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Engagement.Trend == TrendDeclining && abs(t.Engagement.ChangePercentage) > 15
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Team engagement has dropped %.1f%%. Investigate workload, clarity, and individual team member concerns.",
				abs(t.Engagement.ChangePercentage))
		},
	},
	{
		when: func(t TrendReport, _ RiskReport) bool {
			return t.Sentiment.Trend == TrendDeclining && abs(t.Sentiment.ChangePercentage) > 10
		},
		render: func(t TrendReport, _ RiskReport) string {
			return fmt.Sprintf("Team morale declining %.1f%%. Recent decisions or processes may be creating frustration.",
				abs(t.Sentiment.ChangePercentage))
		},
	},
}

var focusRules = []narrativeRule{
	{
		when:   func(_ TrendReport, r RiskReport) bool { return elevated(r.Burnout.Level) },
		render: fixed("Schedule 1-on-1s with team members to understand workload, blockers, and energy levels. Consider reducing meeting frequency or scope."),
	},
	{
		when:   func(_ TrendReport, r RiskReport) bool { return elevated(r.Conflict.Level) },
		render: fixed("Hold a team retrospective to surface tensions constructively. Create space for disagreement while building toward shared solutions."),
	},
	{
		when:   func(_ TrendReport, r RiskReport) bool { return elevated(r.Dominance.Level) },
		render: fixed("Implement structured turn-taking in meetings (round-robin, explicit prompts for quiet members). Coach dominant speakers on active listening."),
	},
	{
		when:   func(t TrendReport, _ RiskReport) bool { return t.Engagement.Trend == TrendDeclining },
		render: fixed("Check in with individual contributors about clarity, autonomy, and whether they feel heard. Engagement drops often signal role confusion or lack of agency."),
	},
	{
		when:   func(t TrendReport, _ RiskReport) bool { return t.Sentiment.Trend == TrendDeclining },
		render: fixed("Review recent decisions and process changes. Team frustration often stems from feeling excluded from decisions that affect their work."),
	},
	{
		when:   func(t TrendReport, _ RiskReport) bool { return t.Participation.Trend == TrendDeclining },
		render: fixed("Create meeting norms that ensure balanced airtime. Ask quieter members direct questions and protect their speaking time from interruption."),
	},
	{
		when:   func(t TrendReport, _ RiskReport) bool { return t.Sentiment.Trend == TrendImproving },
		render: fixed("Continue current collaboration practices. Team morale is improving, so reinforce what's working through recognition and consistency."),
	},
	{
		when:   always,
		render: fixed("Maintain current team dynamics monitoring. No urgent interventions needed, but continue watching for emerging patterns."),
	},
}

func atRiskNames(speakers []AtRiskSpeaker) string {
	names := make([]string, 0, 2)
	for _, s := range firstN(speakers, 2) {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func abs(x float64) float64 {
	return math.Abs(x)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
