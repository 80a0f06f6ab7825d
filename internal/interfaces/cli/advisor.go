package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/mapview"
	"github.com/weathervibes/weathervibes/pkg/types"
)

func newAdvisorCmd() *cobra.Command {
	flags := &featureFlags{}

	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Ask an advisor persona for recommendations",
		Example: `  vibes advisor --vibe fashion --month 12
  vibes advisor --vibe crop --month 6 --lat 30.9 --lon 75.85`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cliCtx); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), submitTimeout)
			defer cancel()

			resp, err := cliCtx.Advisor.Submit(ctx, flags.timeSpec())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			for _, rec := range resp.Recommendations {
				printRecommendation(out, rec)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// printRecommendation renders one advisor card. Fabric hints on clothing
// items pick the fabric glyph instead of the generic icon, and risk-tagged
// alert cards are colored by severity.
func printRecommendation(out io.Writer, rec types.Recommendation) {
	icon := rec.Icon
	if rec.Fabric != "" {
		icon = mapview.FabricIcon(rec.Fabric)
	}

	line := fmt.Sprintf("  %s %s", icon, rec.Item)
	if rec.Risk != "" {
		if c, ok := markerColors[mapview.RiskColor(mapview.RiskLevel(rec.Risk))]; ok {
			c.Fprintln(out, line)
		} else {
			fmt.Fprintln(out, line)
		}
	} else {
		fmt.Fprintln(out, line)
	}
	if rec.Description != "" {
		fmt.Fprintf(out, "     %s\n", rec.Description)
	}
}
