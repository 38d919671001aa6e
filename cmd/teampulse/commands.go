package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "github.com/johnquangdev/team-pulse/errors"
	"github.com/johnquangdev/team-pulse/internal/infrastructure/database"
	"github.com/johnquangdev/team-pulse/internal/usecase/analytics"
	"github.com/johnquangdev/team-pulse/internal/usecase/meeting"
)

const dateLayout = "2006-01-02"

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply pending schema migrations for the configured SQL driver.

Migrations are read from DB_MIGRATIONS_DIR/<driver>. Already applied
migrations are skipped, so running the command twice is safe.

Examples:
  teampulse migrate
  DB_DRIVER=sqlite DB_SQLITE_PATH=pulse.db teampulse migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.Driver == "memory" {
				return fmt.Errorf("the memory driver has no schema to migrate")
			}
			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			applied, err := database.AutoMigrate(db, a.cfg, a.logger)
			if err != nil {
				return apperrors.ErrDBMigrationFailed(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
			return nil
		},
	}
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		title    string
		date     string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "analyze <transcript-file>",
		Short: "Analyze a meeting transcript and store the results",
		Long: `Analyze a meeting transcript and store the results.

The transcript holds one "Speaker: message" line per utterance, optionally
prefixed with a [HH:MM] or HH:MM:SS timestamp. Pass "-" to read from stdin.

Examples:
  teampulse analyze standup.txt --title "Daily standup" --date 2025-04-01
  cat retro.txt | teampulse analyze - --title Retro --duration 45 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, args[0], title, date, duration)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Meeting title (required)")
	cmd.Flags().StringVar(&date, "date", "", "Meeting date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Meeting length in minutes")
	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, path, title, date string, duration int) error {
	raw, err := readTranscript(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	meetingDate := time.Now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		if meetingDate, err = parseDate(date); err != nil {
			return err
		}
	}

	input := meeting.MeetingInput{
		Title:      title,
		Date:       meetingDate,
		Transcript: raw,
	}
	if duration != 0 {
		input.DurationMinutes = &duration
	}

	svc, err := a.meetings(cmd.Context())
	if err != nil {
		return err
	}
	detail, err := svc.Analyze(cmd.Context(), input)
	if err != nil {
		return err
	}
	return a.write(cmd.OutOrStdout(), detail, func(w io.Writer) error {
		return renderMeeting(w, detail, false)
	})
}

func readTranscript(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading transcript from stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}
	return string(raw), nil
}

func newListCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List analyzed meetings, most recent first",
		Long: `List analyzed meetings, most recent first.

Examples:
  teampulse list
  teampulse list --limit 10 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			summaries, err := svc.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), summaries, func(w io.Writer) error {
				return renderSummaries(w, summaries)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum meetings to list (0 for all)")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	var messages bool

	cmd := &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show one meeting with its speaker figures",
		Long: `Show one meeting with its speaker figures.

Examples:
  teampulse show 3f2c1a9e-...
  teampulse show 3f2c1a9e-... --messages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			detail, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), detail, func(w io.Writer) error {
				return renderMeeting(w, detail, messages)
			})
		},
	}

	cmd.Flags().BoolVar(&messages, "messages", false, "Include every message in text output")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <meeting-id>",
		Short: "Delete a meeting with its messages and metrics",
		Long: `Delete a meeting with its messages and metrics. Speakers are kept.

Examples:
  teampulse delete 3f2c1a9e-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meeting %s\n", id)
			return nil
		},
	}
}

func newReportCommand(a *app) *cobra.Command {
	var (
		window int
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the team health report",
		Long: `Build the team health report: trends, risks, health index and insights.

By default the most recent ANALYSIS_REPORT_WINDOW meetings are used.
--from and --to select meetings by date instead; both days are included.

Examples:
  teampulse report
  teampulse report --window 10 -o json
  teampulse report --from 2025-04-01 --to 2025-04-30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildReport(cmd.Context(), a, window, from, to)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), report, func(w io.Writer) error {
				return renderReport(w, report)
			})
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Number of recent meetings to include")
	cmd.Flags().StringVar(&from, "from", "", "First meeting date as YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last meeting date as YYYY-MM-DD")
	return cmd
}

func buildReport(ctx context.Context, a *app, window int, from, to string) (*analytics.TeamReport, error) {
	if (from == "") != (to == "") {
		return nil, fmt.Errorf("--from and --to must be given together")
	}
	if from != "" && window != 0 {
		return nil, fmt.Errorf("--window cannot be combined with --from/--to")
	}

	svc, err := a.meetings(ctx)
	if err != nil {
		return nil, err
	}
	if from == "" {
		return svc.TeamReport(ctx, window)
	}

	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	return svc.ReportForPeriod(ctx, start, end.AddDate(0, 0, 1))
}

func newSpeakerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "speaker <name>",
		Short: "Show one speaker's engagement trend",
		Long: `Show one speaker's engagement trend across every meeting they attended.

Names are matched the way transcripts are normalized, so "alice" and
"ALICE" find the same speaker.

Examples:
  teampulse speaker alice
  teampulse speaker "mary jane" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			trend, err := svc.SpeakerTrend(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), trend, func(w io.Writer) error {
				return renderSpeakerTrend(w, trend)
			})
		},
	}
}

func newCompareCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <first-id> <second-id>",
		Short: "Compare two analyzed meetings",
		Long: `Compare two analyzed meetings. Changes are second relative to first.

Examples:
  teampulse compare 3f2c1a9e-... 91bd04c2-...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseMeetingID(args[0])
			if err != nil {
				return err
			}
			second, err := parseMeetingID(args[1])
			if err != nil {
				return err
			}
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			comparison, err := svc.Compare(cmd.Context(), first, second)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), comparison, func(w io.Writer) error {
				return renderComparison(w, comparison)
			})
		},
	}
}

func newRisksCommand(a *app) *cobra.Command {
	var (
		window   int
		severity string
		category string
	)

	cmd := &cobra.Command{
		Use:   "risks",
		Short: "List detected team risks",
		Long: `List detected team risks over the most recent meetings.

Severity is one of high, medium, low. Category is one of conflict,
burnout, dominance, disengagement.

Examples:
  teampulse risks
  teampulse risks --severity high
  teampulse risks --category burnout --window 8 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.meetings(cmd.Context())
			if err != nil {
				return err
			}
			overview, err := svc.Risks(cmd.Context(), meeting.RiskFilter{
				Window:   window,
				Severity: analytics.RiskLevel(severity),
				Category: analytics.RiskCategory(category),
			})
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), overview, func(w io.Writer) error {
				return renderRisks(w, overview)
			})
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Number of recent meetings to include")
	cmd.Flags().StringVar(&severity, "severity", "", "Only show risks at this level")
	cmd.Flags().StringVar(&category, "category", "", "Only show risks in this category")
	return cmd
}

func parseMeetingID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidArgument(fmt.Sprintf("invalid meeting id %q", raw))
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidArgument(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return t, nil
}
