// Package session holds the in-memory state of a running Weather Vibes
// session: the map viewport, the user's vibe selection, and the last
// successful result per analysis feature.
//
// Each store is an explicit context object constructed at startup and passed
// to the components that need it — there is no package-level mutable state.
// Stores are single-writer by convention (the component documented as owner
// performs the writes) and multi-reader; notification is synchronous, so a
// subscriber must not call back into the same store's setters from inside
// its own change handler. The stores detect that re-entrancy and panic
// rather than recurse without bound.
package session

import (
	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// Session bundles the three stores for one running session. It lives for
// the process lifetime; nothing is persisted across runs.
type Session struct {
	Viewport  *ViewportStore
	Selection *SelectionStore
	Results   *ResultCache
}

// New constructs a Session with the viewport at the configured default
// center and zoom.
func New(cfg config.MapConfig, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Session{
		Viewport: NewViewportStore(types.Viewport{
			Center: types.LatLon{Lat: cfg.DefaultCenterLat, Lon: cfg.DefaultCenterLon},
			Zoom:   cfg.DefaultZoom,
		}, log),
		Selection: NewSelectionStore(log),
		Results:   NewResultCache(log),
	}
}
