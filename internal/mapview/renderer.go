// Package mapview bridges the native map widget and the session's viewport
// store, and renders feature results as map overlays. The widget itself is
// behind the Renderer interface; this package owns the one genuinely
// delicate piece of logic in the client — keeping the widget and the store
// in sync without feeding back into each other.
package mapview

import (
	"time"

	"github.com/weathervibes/weathervibes/pkg/types"
)

// Marker is a single overlay point with its display color.
type Marker struct {
	Point types.LatLon
	Color Color
	Score float64
	Label string
}

// Renderer abstracts the native map widget. Implementations translate
// these calls into whatever the underlying renderer needs; the adapter
// never talks to the widget directly.
type Renderer interface {
	// Viewport returns the widget's current live state.
	Viewport() types.Viewport

	// SetView commands the widget to move to center/zoom. The widget will
	// later emit a move-end event of its own for the commanded move.
	SetView(center types.LatLon, zoom float64)

	// SetOverlay replaces the overlay set for one feature, leaving other
	// features' overlays untouched.
	SetOverlay(feature types.Feature, markers []Marker)

	// ClearOverlay removes the overlay set for one feature.
	ClearOverlay(feature types.Feature)

	// OnMoveEnd registers the callback invoked after every completed
	// widget move, user-initiated or commanded.
	OnMoveEnd(fn func())
}

// Clock abstracts time for the guard window so the suppression behavior is
// testable without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
