package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/devstub"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// featureFlags are the submit parameters shared by the three analysis
// commands: the vibe, the time specification, and an optional viewpoint.
type featureFlags struct {
	vibe  string
	month int
	start string
	end   string
	lat   float64
	lon   float64
	zoom  float64
}

func (f *featureFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.vibe, "vibe", "", "vibe or advisor id (see 'vibes vibes')")
	fl.IntVar(&f.month, "month", 0, "month 1-12")
	fl.StringVar(&f.start, "start", "", "range start date YYYY-MM-DD")
	fl.StringVar(&f.end, "end", "", "range end date YYYY-MM-DD")
	fl.Float64Var(&f.lat, "lat", 0, "center latitude (default: current viewport)")
	fl.Float64Var(&f.lon, "lon", 0, "center longitude")
	fl.Float64Var(&f.zoom, "zoom", 0, "map zoom level")
}

// timeSpec builds the mutually exclusive month/range spec; when both are
// given the range wins, mirroring last-one-set-wins entry in the UI.
func (f *featureFlags) timeSpec() types.TimeSpec {
	var ts types.TimeSpec
	if f.month != 0 {
		ts = ts.WithMonth(f.month)
	}
	if f.start != "" || f.end != "" {
		ts = ts.WithRange(f.start, f.end)
	}
	return ts
}

// apply selects the vibe and moves the viewport when coordinates were
// given. An unknown vibe id fails here, before any submit.
func (f *featureFlags) apply(ctx *CLIContext) error {
	if f.vibe != "" {
		vibe, err := devstub.VibeByID(f.vibe)
		if err != nil {
			return err
		}
		ctx.Session.Selection.SelectVibe(vibe)
	}
	if f.lat != 0 || f.lon != 0 {
		vp := ctx.Session.Viewport.Get()
		zoom := f.zoom
		if zoom == 0 {
			zoom = vp.Zoom
		}
		ctx.Adapter.Recenter(types.LatLon{Lat: f.lat, Lon: f.lon}, zoom)
	}
	return nil
}

func newWhereCmd() *cobra.Command {
	flags := &featureFlags{}

	cmd := &cobra.Command{
		Use:   "where",
		Short: "Score locations around the viewport for a vibe",
		Example: `  vibes where --vibe stargazing --month 11
  vibes where --vibe beach_day --start 2026-07-01 --end 2026-07-14 --lat -33.86 --lon 151.21`,
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

			resp, err := cliCtx.Where.Submit(ctx, flags.timeSpec())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "score range %.1f – %.1f over %d points\n",
				resp.MinScore, resp.MaxScore, len(resp.Scores))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
