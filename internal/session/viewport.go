package session

import (
	"sync"

	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// ViewportStore holds the authoritative map viewport. The map adapter is
// the only writer: it forwards native move events and keeps Bounds
// consistent with Center/Zoom. The store itself performs no cross-field
// derivation and no validation — inputs are accepted as given.
type ViewportStore struct {
	mu        sync.Mutex
	vp        types.Viewport
	subs      []func(types.Viewport)
	notifying bool
	log       logging.Logger
}

// NewViewportStore constructs a ViewportStore with the given initial state.
func NewViewportStore(initial types.Viewport, log logging.Logger) *ViewportStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ViewportStore{vp: initial, log: log.Named("viewport")}
}

// Get returns the current viewport snapshot. Bounds is copied so callers
// cannot alias the store's state.
func (s *ViewportStore) Get() types.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneViewport(s.vp)
}

// SetCenter replaces the center. Last write wins.
func (s *ViewportStore) SetCenter(lon, lat float64) {
	s.update(func(vp *types.Viewport) {
		vp.Center = types.LatLon{Lat: lat, Lon: lon}
	})
}

// SetZoom replaces the zoom level.
func (s *ViewportStore) SetZoom(zoom float64) {
	s.update(func(vp *types.Viewport) {
		vp.Zoom = zoom
	})
}

// SetBounds replaces the visible bounds. The caller is responsible for
// keeping bounds consistent with center/zoom.
func (s *ViewportStore) SetBounds(b types.Bounds) {
	s.update(func(vp *types.Viewport) {
		bounds := b
		vp.Bounds = &bounds
	})
}

// Set replaces all fields at once. Used by the map adapter so a single
// native move event produces a single notification.
func (s *ViewportStore) Set(vp types.Viewport) {
	s.update(func(dst *types.Viewport) {
		*dst = cloneViewport(vp)
	})
}

// Subscribe registers fn to be called synchronously after every change,
// with the post-change snapshot. The returned function removes the
// subscription.
func (s *ViewportStore) Subscribe(fn func(types.Viewport)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subs) {
			s.subs[idx] = nil
		}
	}
}

func (s *ViewportStore) update(mutate func(*types.Viewport)) {
	s.mu.Lock()
	if s.notifying {
		s.mu.Unlock()
		panic("session: re-entrant write to ViewportStore from a change handler")
	}
	mutate(&s.vp)
	snapshot := cloneViewport(s.vp)
	subs := make([]func(types.Viewport), len(s.subs))
	copy(subs, s.subs)
	s.notifying = true
	s.mu.Unlock()

	s.log.Debug("viewport changed",
		logging.Float64("lat", snapshot.Center.Lat),
		logging.Float64("lon", snapshot.Center.Lon),
		logging.Float64("zoom", snapshot.Zoom))

	for _, fn := range subs {
		if fn != nil {
			fn(snapshot)
		}
	}

	s.mu.Lock()
	s.notifying = false
	s.mu.Unlock()
}

func cloneViewport(vp types.Viewport) types.Viewport {
	out := vp
	if vp.Bounds != nil {
		b := *vp.Bounds
		out.Bounds = &b
	}
	return out
}
