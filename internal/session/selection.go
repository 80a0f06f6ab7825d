package session

import (
	"sync"

	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// SelectionStore holds the user's selected vibe and active feature panel.
// Only user selection actions write to it. The vibe-kind/feature
// compatibility invariant is deliberately not enforced here: the store
// stays thin and testable while the panel layer carries the policy.
type SelectionStore struct {
	mu        sync.Mutex
	sel       types.Selection
	subs      []func(types.Selection)
	notifying bool
	log       logging.Logger
}

// NewSelectionStore constructs an empty SelectionStore (no vibe, no active
// feature).
func NewSelectionStore(log logging.Logger) *SelectionStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SelectionStore{log: log.Named("selection")}
}

// Get returns the current selection snapshot.
func (s *SelectionStore) Get() types.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSelection(s.sel)
}

// SelectVibe sets the vibe (nil clears it). The active feature is not
// auto-changed.
func (s *SelectionStore) SelectVibe(v *types.Vibe) {
	s.update(func(sel *types.Selection) {
		if v == nil {
			sel.Vibe = nil
			return
		}
		clone := *v
		sel.Vibe = &clone
	})
}

// SetActiveFeature sets the active feature panel. Callers must check the
// selected vibe's kind before calling; the store accepts any value.
func (s *SelectionStore) SetActiveFeature(f types.Feature) {
	s.update(func(sel *types.Selection) {
		sel.ActiveFeature = f
	})
}

// Subscribe registers fn to be called synchronously after every change.
// The returned function removes the subscription.
func (s *SelectionStore) Subscribe(fn func(types.Selection)) func() {
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

func (s *SelectionStore) update(mutate func(*types.Selection)) {
	s.mu.Lock()
	if s.notifying {
		s.mu.Unlock()
		panic("session: re-entrant write to SelectionStore from a change handler")
	}
	mutate(&s.sel)
	snapshot := cloneSelection(s.sel)
	subs := make([]func(types.Selection), len(s.subs))
	copy(subs, s.subs)
	s.notifying = true
	s.mu.Unlock()

	vibeID := ""
	if snapshot.Vibe != nil {
		vibeID = snapshot.Vibe.ID
	}
	s.log.Debug("selection changed",
		logging.String("vibe", vibeID),
		logging.String("feature", string(snapshot.ActiveFeature)))

	for _, fn := range subs {
		if fn != nil {
			fn(snapshot)
		}
	}

	s.mu.Lock()
	s.notifying = false
	s.mu.Unlock()
}

func cloneSelection(sel types.Selection) types.Selection {
	out := sel
	if sel.Vibe != nil {
		v := *sel.Vibe
		out.Vibe = &v
	}
	return out
}
