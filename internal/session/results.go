package session

import (
	"sync"

	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// ResultCache holds the last successful backend response per analysis
// feature: exactly one slot per feature, replaced wholesale on the next
// success. There is no merge, no TTL, and no eviction — the client only
// ever has one "current" result per feature, so anything more would be a
// keyed cache nobody reads.
//
// Writes are admitted by request sequence number so that "last request
// wins" holds even when responses complete out of order: Begin issues a
// fresh number when a request starts, and Set rejects any write whose
// number is no longer the newest issued for that feature.
type ResultCache struct {
	mu        sync.Mutex
	slots     map[types.Feature]*types.FeatureResult
	seq       map[types.Feature]uint64
	subs      []func(types.Feature, *types.FeatureResult)
	notifying bool
	log       logging.Logger
}

// NewResultCache constructs an empty ResultCache.
func NewResultCache(log logging.Logger) *ResultCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ResultCache{
		slots: make(map[types.Feature]*types.FeatureResult),
		seq:   make(map[types.Feature]uint64),
		log:   log.Named("results"),
	}
}

// Get returns the current result for the feature, or nil when none is
// cached.
func (c *ResultCache) Get(feature types.Feature) *types.FeatureResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[feature]
}

// Begin registers the start of a request for the feature and returns its
// sequence number. Any write carrying an earlier number is stale and will
// be rejected by Set.
func (c *ResultCache) Begin(feature types.Feature) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[feature]++
	return c.seq[feature]
}

// Set atomically replaces the feature's slot with result, provided seq is
// still the newest number issued for that feature. It reports whether the
// write was admitted. Subscribers are notified synchronously on admission.
func (c *ResultCache) Set(feature types.Feature, seq uint64, result *types.FeatureResult) bool {
	c.mu.Lock()
	if c.notifying {
		c.mu.Unlock()
		panic("session: re-entrant write to ResultCache from a change handler")
	}
	if seq != c.seq[feature] {
		newest := c.seq[feature]
		c.mu.Unlock()
		c.log.Debug("stale result dropped",
			logging.String("feature", string(feature)),
			logging.Uint64("seq", seq),
			logging.Uint64("newest", newest))
		return false
	}
	c.slots[feature] = result
	subs := make([]func(types.Feature, *types.FeatureResult), len(c.subs))
	copy(subs, c.subs)
	c.notifying = true
	c.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(feature, result)
		}
	}

	c.mu.Lock()
	c.notifying = false
	c.mu.Unlock()
	return true
}

// Clear drops the feature's cached result and notifies subscribers with a
// nil result. No user action currently triggers this, but the design keeps
// it available.
func (c *ResultCache) Clear(feature types.Feature) {
	c.mu.Lock()
	if c.notifying {
		c.mu.Unlock()
		panic("session: re-entrant write to ResultCache from a change handler")
	}
	delete(c.slots, feature)
	subs := make([]func(types.Feature, *types.FeatureResult), len(c.subs))
	copy(subs, c.subs)
	c.notifying = true
	c.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(feature, nil)
		}
	}

	c.mu.Lock()
	c.notifying = false
	c.mu.Unlock()
}

// Subscribe registers fn to be called synchronously after every admitted
// write or clear, with the feature and its new result (nil on clear). The
// returned function removes the subscription.
func (c *ResultCache) Subscribe(fn func(types.Feature, *types.FeatureResult)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
	idx := len(c.subs) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if idx < len(c.subs) {
			c.subs[idx] = nil
		}
	}
}
