package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
	"github.com/johnquangdev/team-pulse/internal/usecase/meeting"
)

// write encodes v in the selected format, falling back to the text renderer
func (a *app) write(w io.Writer, v any, text func(io.Writer) error) error {
	switch a.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func renderMeeting(w io.Writer, d *meeting.MeetingDetail, withMessages bool) error {
	fmt.Fprintf(w, "Meeting:    %s\n", d.Title)
	fmt.Fprintf(w, "ID:         %s\n", d.ID)
	fmt.Fprintf(w, "Date:       %s\n", d.Date)
	if d.DurationMinutes != nil {
		fmt.Fprintf(w, "Duration:   %d min\n", *d.DurationMinutes)
	}
	fmt.Fprintf(w, "Messages:   %d (%d words)\n", d.TotalMessages, d.TotalWords)
	fmt.Fprintf(w, "Sentiment:  %.3f (%s)\n", d.AvgSentiment, d.SentimentLabel)
	fmt.Fprintf(w, "Balance:    %.3f\n", d.ParticipationBalance)
	dist := d.SentimentDistribution
	fmt.Fprintf(w, "Tone:       %d positive, %d neutral, %d negative\n\n", dist.Positive, dist.Neutral, dist.Negative)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEAKER\tMESSAGES\tWORDS\tSHARE\tENGAGEMENT\tSENTIMENT\tQUESTIONS")
	fmt.Fprintln(tw, "-------\t--------\t-----\t-----\t----------\t---------\t---------")
	for _, s := range d.Speakers {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%.1f\t%.3f\t%d\n",
			s.Speaker, s.TotalMessages, s.TotalWords, s.ParticipationPercentage,
			s.EngagementScore, s.AvgSentiment, s.QuestionCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !withMessages || len(d.Messages) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, m := range d.Messages {
		stamp := ""
		if m.Timestamp != nil {
			stamp = "[" + *m.Timestamp + "] "
		}
		fmt.Fprintf(w, "%3d %s%s: %s (%.2f)\n", m.Sequence, stamp, m.Speaker, m.Content, m.SentimentScore)
	}
	return nil
}

func renderSummaries(w io.Writer, summaries []analytics.MeetingSummary) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No meetings analyzed yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tMESSAGES\tSENTIMENT\tBALANCE")
	fmt.Fprintln(tw, "--\t----\t-----\t--------\t---------\t-------")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.3f (%s)\t%.3f\n",
			s.ID, s.Date, s.Title, s.TotalMessages, s.AvgSentiment, s.SentimentLabel, s.ParticipationBalance)
	}
	return tw.Flush()
}

func renderReport(w io.Writer, r *analytics.TeamReport) error {
	banner := r.Insights.Banner
	fmt.Fprintln(w, banner.MainMessage)
	if banner.PrimaryConcern != nil {
		fmt.Fprintf(w, "Primary concern: %s\n", *banner.PrimaryConcern)
	}
	fmt.Fprintf(w, "Focus: %s\n\n", banner.RecommendedFocus)

	fmt.Fprintf(w, "Meetings analyzed: %d\n", r.MeetingCount)
	fmt.Fprintf(w, "Health index:      %.1f (%s)\n", r.Health.Score, r.Health.Level)
	fmt.Fprintf(w, "Overall risk:      %.1f (%s)\n\n", r.Risks.Overall.Score, r.Risks.Overall.Level)
	fmt.Fprintf(w, "%s\n\n", r.Insights.ExecutiveSummary)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TREND\tDIRECTION\tCHANGE\tCURRENT\tPREVIOUS")
	fmt.Fprintln(tw, "-----\t---------\t------\t-------\t--------")
	for _, row := range []struct {
		name   string
		result analytics.TrendResult
	}{
		{"sentiment", r.Trends.Sentiment},
		{"participation", r.Trends.Participation},
		{"engagement", r.Trends.Engagement},
		{"message volume", r.Trends.MessageVolume},
	} {
		fmt.Fprintf(tw, "%s\t%s\t%+.1f%%\t%.3f\t%.3f\n",
			row.name, row.result.Trend, row.result.ChangePercentage, row.result.CurrentAvg, row.result.PreviousAvg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Insights.KeyStrengths) > 0 {
		fmt.Fprintln(w, "\nStrengths:")
		for _, s := range r.Insights.KeyStrengths {
			fmt.Fprintf(w, "  + %s\n", s)
		}
	}
	if len(r.RiskCatalog) > 0 {
		fmt.Fprintln(w, "\nRisks:")
		if err := renderRiskTable(w, r.RiskCatalog); err != nil {
			return err
		}
	}
	if len(r.Insights.TopPriorities) > 0 {
		fmt.Fprintln(w, "\nPriorities:")
		for _, p := range r.Insights.TopPriorities {
			fmt.Fprintf(w, "  %d. [%s] %s: %s\n", p.Rank, p.Severity, p.Title, p.Action)
		}
	}
	return nil
}

func renderRisks(w io.Writer, o *meeting.RiskOverview) error {
	fmt.Fprintf(w, "Meetings analyzed: %d\n", o.MeetingCount)
	fmt.Fprintf(w, "Overall risk:      %.1f (%s)\n", o.Overall.Score, o.Overall.Level)
	fmt.Fprintf(w, "Detected:          %d high, %d medium, %d low\n\n", o.Counts.High, o.Counts.Medium, o.Counts.Low)

	if len(o.Risks) == 0 {
		fmt.Fprintln(w, "No matching risks.")
		return nil
	}
	return renderRiskTable(w, o.Risks)
}

func renderRiskTable(w io.Writer, risks []analytics.RiskEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RISK\tLEVEL\tSCORE\tRECOMMENDATION")
	fmt.Fprintln(tw, "----\t-----\t-----\t--------------")
	for _, r := range risks {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Type, r.Level, r.Score, r.Recommendation)
	}
	return tw.Flush()
}

func renderSpeakerTrend(w io.Writer, t *analytics.SpeakerTrendResult) error {
	fmt.Fprintf(w, "Speaker: %s\n", t.Speaker)
	fmt.Fprintf(w, "Trend:   %s (%+.1f%%)\n\n", t.Trend, t.ChangePercentage)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tENGAGEMENT\tSHARE\tSENTIMENT")
	fmt.Fprintln(tw, "----\t----------\t-----\t---------")
	for _, p := range t.DataPoints {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f%%\t%.3f\n", p.Date, p.Engagement, p.Participation, p.Sentiment)
	}
	return tw.Flush()
}

func renderComparison(w io.Writer, c *analytics.MeetingComparison) error {
	fmt.Fprintln(w, c.Summary)
	fmt.Fprintf(w, "\nSentiment: %+.3f\n", c.SentimentChange)
	fmt.Fprintf(w, "Balance:   %+.3f\n", c.BalanceChange)
	fmt.Fprintf(w, "Messages:  %+d\n", c.MessageChange)
	fmt.Fprintf(w, "Words:     %+d\n\n", c.WordChange)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEAKER\tFIRST\tSECOND\tCHANGE")
	fmt.Fprintln(tw, "-------\t-----\t------\t------")
	for _, s := range c.Speakers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Speaker, optional(s.First, "%.1f"), optional(s.Second, "%.1f"), optional(s.Change, "%+.1f"))
	}
	return tw.Flush()
}

func optional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
