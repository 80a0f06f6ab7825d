package mapview

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// moveState is the adapter's commanded-move state machine. The explicit
// state (rather than an ad hoc timer alone) makes the suppression window
// observable and testable.
type moveState int

const (
	stateIdle moveState = iota
	stateCommandingMove
)

// Adapter is the bidirectional bridge between the native map widget and
// the viewport store, and the renderer of feature-result overlays.
//
// The two sync directions would feed back into each other without care:
// a store write re-renders the widget, whose move-end event would re-write
// the store with a rounding-differing value, forever. The adapter breaks
// the loop two ways:
//
//  1. Native move-end events only write to the store when the delta
//     exceeds a small epsilon.
//  2. Store changes only command the widget when they differ meaningfully
//     from its live state; while a commanded move is in flight
//     (CommandingMove state), move-end echoes inside the guard window are
//     swallowed. The window is a best-effort debounce, not an
//     acknowledgement-based guarantee.
type Adapter struct {
	renderer Renderer
	session  *session.Session
	cfg      config.MapConfig
	clock    Clock
	log      logging.Logger

	mu         sync.Mutex
	state      moveState
	guardUntil time.Time

	unsubViewport func()
	unsubResults  func()
}

// InitError marks a renderer that failed to come up. The adapter is not
// constructed; the caller renders a static error panel instead. No retry
// path exists.
func InitError(cause error) error {
	return errors.Wrap(cause, errors.CodeRendererInit, "map failed to initialize")
}

// New constructs the adapter, wires the renderer's move-end events to the
// viewport store, and subscribes to store and result-cache changes. The
// renderer must already be initialized; a nil renderer is the
// missing-configuration failure mode and yields an InitError.
func New(r Renderer, sess *session.Session, cfg config.MapConfig, clock Clock, log logging.Logger) (*Adapter, error) {
	if r == nil {
		return nil, InitError(fmt.Errorf("no renderer configured"))
	}
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	a := &Adapter{
		renderer: r,
		session:  sess,
		cfg:      cfg,
		clock:    clock,
		log:      log.Named("mapview"),
	}

	r.OnMoveEnd(a.handleMoveEnd)
	a.unsubViewport = sess.Viewport.Subscribe(a.handleStoreChange)
	a.unsubResults = sess.Results.Subscribe(a.handleResultChange)

	return a, nil
}

// Close removes the adapter's subscriptions. The renderer's own teardown
// is the embedder's concern.
func (a *Adapter) Close() {
	if a.unsubViewport != nil {
		a.unsubViewport()
	}
	if a.unsubResults != nil {
		a.unsubResults()
	}
}

// Recenter moves the map to center/zoom programmatically (e.g. "go to this
// result's location"). It goes through the viewport store so every reader
// of the current viewport sees the move.
func (a *Adapter) Recenter(center types.LatLon, zoom float64) {
	vp := a.session.Viewport.Get()
	vp.Center = center
	vp.Zoom = zoom
	a.session.Viewport.Set(vp)
}

// handleMoveEnd processes a native move-end event: widget -> store.
func (a *Adapter) handleMoveEnd() {
	a.mu.Lock()
	if a.state == stateCommandingMove {
		a.state = stateIdle
		if a.clock.Now().Before(a.guardUntil) {
			a.mu.Unlock()
			// Echo of our own SetView command; the store already holds
			// the commanded center/zoom up to rounding. Only the widget
			// knows the resulting bounds, so carry those over.
			if live := a.renderer.Viewport(); live.Bounds != nil {
				a.session.Viewport.SetBounds(*live.Bounds)
			}
			a.log.Debug("move-end suppressed inside guard window")
			return
		}
	}
	a.mu.Unlock()

	live := a.renderer.Viewport()
	stored := a.session.Viewport.Get()

	if !a.differs(live, stored) {
		return
	}
	a.session.Viewport.Set(live)
}

// handleStoreChange processes a viewport-store change: store -> widget.
// Writes that originated from handleMoveEnd arrive here too; the epsilon
// comparison against the widget's live state makes them no-ops.
func (a *Adapter) handleStoreChange(vp types.Viewport) {
	live := a.renderer.Viewport()
	if !a.differs(vp, live) {
		return
	}

	a.mu.Lock()
	a.state = stateCommandingMove
	a.guardUntil = a.clock.Now().Add(a.cfg.GuardWindow)
	a.mu.Unlock()

	a.log.Debug("commanding widget move",
		logging.Float64("lat", vp.Center.Lat),
		logging.Float64("lon", vp.Center.Lon),
		logging.Float64("zoom", vp.Zoom))
	a.renderer.SetView(vp.Center, vp.Zoom)
}

// handleResultChange recomputes the overlay for the changed feature only.
func (a *Adapter) handleResultChange(feature types.Feature, result *types.FeatureResult) {
	if result == nil {
		a.renderer.ClearOverlay(feature)
		return
	}
	a.renderer.SetOverlay(feature, a.markersFor(result))
}

// markersFor converts a feature result into overlay markers with colors
// from the shared ramp.
func (a *Adapter) markersFor(result *types.FeatureResult) []Marker {
	switch {
	case result.Where != nil:
		resp := result.Where
		markers := make([]Marker, 0, len(resp.Scores))
		for _, s := range resp.Scores {
			markers = append(markers, Marker{
				Point: types.LatLon{Lat: s.Lat, Lon: s.Lon},
				Color: LocationScoreColor(s.Score, resp.MinScore, resp.MaxScore),
				Score: s.Score,
			})
		}
		return markers

	case result.When != nil:
		resp := result.When
		label := ""
		score := 0.0
		if resp.BestMonth >= 1 {
			for _, m := range resp.MonthlyScores {
				if m.Month == resp.BestMonth {
					label = m.MonthName
					score = m.Score
					break
				}
			}
		}
		return []Marker{{
			Point: types.LatLon{Lat: resp.Location.Lat, Lon: resp.Location.Lon},
			Color: TimeScoreColor(score),
			Score: score,
			Label: label,
		}}

	case result.Advisor != nil:
		resp := result.Advisor
		label := resp.AdvisorType
		if name, ok := resp.Metadata["advisor_name"].(string); ok {
			label = name
		}
		return []Marker{{
			Point: types.LatLon{Lat: resp.Location.Lat, Lon: resp.Location.Lon},
			Color: ColorGreen,
			Label: label,
		}}
	}
	return nil
}

// differs reports whether two viewports differ beyond the configured
// epsilons. Bounds are excluded: they are derived state that follows
// center/zoom.
func (a *Adapter) differs(x, y types.Viewport) bool {
	if math.Abs(x.Center.Lat-y.Center.Lat) > a.cfg.CenterEpsilon {
		return true
	}
	if math.Abs(x.Center.Lon-y.Center.Lon) > a.cfg.CenterEpsilon {
		return true
	}
	return math.Abs(x.Zoom-y.Zoom) > a.cfg.ZoomEpsilon
}
