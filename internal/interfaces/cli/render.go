package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/fatih/color"

	"github.com/weathervibes/weathervibes/internal/mapview"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// markerColors maps the overlay ramp onto terminal colors.
var markerColors = map[mapview.Color]*color.Color{
	mapview.ColorGreen:      color.New(color.FgGreen, color.Bold),
	mapview.ColorLightGreen: color.New(color.FgGreen),
	mapview.ColorYellow:     color.New(color.FgYellow),
	mapview.ColorOrange:     color.New(color.FgHiYellow),
	mapview.ColorRed:        color.New(color.FgRed),
}

// textRenderer is the terminal map surface: it keeps a live viewport like a
// map widget would and prints overlays as colored score lines. It never
// emits synthetic move events, so the adapter only ever drives it
// programmatically.
type textRenderer struct {
	mu       sync.Mutex
	out      io.Writer
	vp       types.Viewport
	moveEnd  func()
	overlays map[types.Feature][]mapview.Marker
}

func newTextRenderer(out io.Writer, initial types.Viewport) *textRenderer {
	return &textRenderer{
		out:      out,
		vp:       initial,
		overlays: make(map[types.Feature][]mapview.Marker),
	}
}

func (r *textRenderer) Viewport() types.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vp
}

func (r *textRenderer) SetView(center types.LatLon, zoom float64) {
	r.mu.Lock()
	r.vp.Center = center
	r.vp.Zoom = zoom
	r.mu.Unlock()
	fmt.Fprintf(r.out, "map centered on %s (zoom %.1f)\n", center.String(), zoom)
}

func (r *textRenderer) SetOverlay(feature types.Feature, markers []mapview.Marker) {
	r.mu.Lock()
	r.overlays[feature] = markers
	r.mu.Unlock()
	r.printOverlay(feature, markers)
}

func (r *textRenderer) ClearOverlay(feature types.Feature) {
	r.mu.Lock()
	delete(r.overlays, feature)
	r.mu.Unlock()
}

func (r *textRenderer) OnMoveEnd(fn func()) {
	r.mu.Lock()
	r.moveEnd = fn
	r.mu.Unlock()
}

// printOverlay renders markers best-first, capped so a large grid stays
// readable in a terminal.
func (r *textRenderer) printOverlay(feature types.Feature, markers []mapview.Marker) {
	const maxRows = 20

	sorted := make([]mapview.Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	fmt.Fprintf(r.out, "\n%s overlay (%d markers):\n", feature, len(markers))
	for i, m := range sorted {
		if i == maxRows {
			fmt.Fprintf(r.out, "  … and %d more\n", len(sorted)-maxRows)
			break
		}
		line := fmt.Sprintf("  %7.4f,%9.4f  %5.1f", m.Point.Lat, m.Point.Lon, m.Score)
		if m.Label != "" {
			line += "  " + m.Label
		}
		if c, ok := markerColors[m.Color]; ok {
			c.Fprintln(r.out, line)
		} else {
			fmt.Fprintln(r.out, line)
		}
	}
}

// colorNotifier renders panel notifications as colored toast lines.
type colorNotifier struct {
	out io.Writer
}

func (n colorNotifier) Success(msg string) {
	color.New(color.FgGreen).Fprintf(n.out, "✓ %s\n", msg)
}

func (n colorNotifier) Warn(msg string) {
	color.New(color.FgYellow).Fprintf(n.out, "! %s\n", msg)
}

func (n colorNotifier) Error(msg string) {
	color.New(color.FgRed).Fprintf(n.out, "✗ %s\n", msg)
}
