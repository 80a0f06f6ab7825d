package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/devstub"
	"github.com/weathervibes/weathervibes/pkg/types"
)

func newVibesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vibes",
		Short: "List the available vibes and advisor personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			advisorStyle := color.New(color.FgMagenta)

			for _, v := range devstub.Vibes() {
				if v.Kind == types.VibeKindAdvisor {
					advisorStyle.Fprintf(out, "  %-16s %s (advisor)\n", v.ID, v.Name)
				} else {
					fmt.Fprintf(out, "  %-16s %s\n", v.ID, v.Name)
				}
			}
			return nil
		},
	}
}
