package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/johnquangdev/team-pulse/errors"
)

var outputFormats = map[string]bool{"text": true, "json": true, "yaml": true}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "teampulse",
		Short: "Team health analytics from meeting transcripts",
		Long: `teampulse analyzes meeting transcripts and tracks team health over time.

Each transcript is split into speaker messages, scored for sentiment and
stored with per-speaker participation and engagement figures. Reports look
across recent meetings for trends, risks and a composite health index.

COMMON WORKFLOWS:
  Set up schema:     teampulse migrate
  Add a meeting:     teampulse analyze standup.txt --title "Daily standup" --date 2025-04-01
  Team overview:     teampulse report --window 5
  Drill into risks:  teampulse risks --severity high
  Follow a person:   teampulse speaker "alice"

Configuration is read from the environment and an optional .env file
(DB_DRIVER, DB_HOST, REDIS_ENABLED, ANALYSIS_REPORT_WINDOW, METRICS_ADDR, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !outputFormats[a.format] {
				return fmt.Errorf("unsupported output format %q (use text, json or yaml)", a.format)
			}
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.format, "output", "o", "text", "Output format: text, json, yaml")

	root.AddCommand(
		newMigrateCommand(a),
		newAnalyzeCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newDeleteCommand(a),
		newReportCommand(a),
		newSpeakerCommand(a),
		newCompareCommand(a),
		newRisksCommand(a),
	)
	return root
}

// describeError renders application errors with their reasons, one per line
func describeError(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(appErr.Message)
	if appErr.Raw != nil {
		fmt.Fprintf(&b, ": %v", appErr.Raw)
	}
	for _, reason := range appErr.Reasons {
		fmt.Fprintf(&b, "\n  - %s", reason)
	}
	return b.String()
}
