package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/mapview"
	"github.com/weathervibes/weathervibes/pkg/types"
)

func newWhenCmd() *cobra.Command {
	flags := &featureFlags{}

	cmd := &cobra.Command{
		Use:   "when",
		Short: "Score time windows at the viewport center for a vibe",
		Example: `  vibes when --vibe stargazing --month 1
  vibes when --vibe picnic_perfect --start 2026-05-01 --end 2026-05-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cliCtx); err != nil {
				return err
			}

			// The calendar view is a terminal table here.
			cliCtx.When.OnCalendar(func(resp *types.WhenResponse) {
				printCalendar(cmd, resp)
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), submitTimeout)
			defer cancel()

			_, err = cliCtx.When.Submit(ctx, flags.timeSpec())
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// printCalendar renders the time scores as one colored bar per period.
func printCalendar(cmd *cobra.Command, resp *types.WhenResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)

	switch {
	case len(resp.MonthlyScores) > 0:
		for _, m := range resp.MonthlyScores {
			printScoreBar(out, fmt.Sprintf("%-9s", m.MonthName), m.Score, m.Month == resp.BestMonth)
		}
	case len(resp.DailyScores) > 0:
		for _, d := range resp.DailyScores {
			printScoreBar(out, d.Date, d.Score, d.Date == resp.BestDate)
		}
	case len(resp.HourlyScores) > 0:
		for _, h := range resp.HourlyScores {
			printScoreBar(out, fmt.Sprintf("%02d:00    ", h.Hour), h.Score, h.Hour == resp.BestHour)
		}
	}
}

func printScoreBar(out io.Writer, label string, score float64, best bool) {
	bar := make([]byte, int(score/5))
	for i := range bar {
		bar[i] = '#'
	}

	line := fmt.Sprintf("  %s %5.1f %s", label, score, bar)
	if best {
		line += "  ← best"
	}
	if c, ok := markerColors[mapview.TimeScoreColor(score)]; ok {
		c.Fprintln(out, line)
	} else {
		color.New().Fprintln(out, line)
	}
}
