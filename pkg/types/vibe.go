package types

// VibeKind distinguishes weighted scoring profiles from advisor personas.
type VibeKind string

const (
	VibeKindStandard VibeKind = "standard"
	VibeKindAdvisor  VibeKind = "advisor"
)

// Vibe is a named scoring profile or advisor persona selected by the user.
// The client treats it as an opaque identifier plus display metadata; the
// backend owns the parameter weights.
type Vibe struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind VibeKind `json:"kind"`
}

// IsAdvisor reports whether the vibe is an advisor persona.
func (v *Vibe) IsAdvisor() bool {
	return v != nil && v.Kind == VibeKindAdvisor
}

// Feature identifies one of the three analysis features.
type Feature string

const (
	FeatureNone    Feature = ""
	FeatureWhere   Feature = "where"
	FeatureWhen    Feature = "when"
	FeatureAdvisor Feature = "advisor"
)

// Valid reports whether f names a real feature.
func (f Feature) Valid() bool {
	switch f {
	case FeatureWhere, FeatureWhen, FeatureAdvisor:
		return true
	}
	return false
}

// Selection is the user's current vibe and active feature panel.
// Invariant (enforced by the panel layer, not the store): an advisor vibe
// goes with FeatureAdvisor, a standard vibe with FeatureWhere/FeatureWhen.
type Selection struct {
	Vibe          *Vibe   `json:"vibe,omitempty"`
	ActiveFeature Feature `json:"active_feature"`
}

// TimeSpec is a user-entered time specification: either a single month or a
// start/end date pair. The two modes are mutually exclusive; setting one
// clears the other (last one set wins).
type TimeSpec struct {
	Month     int    `json:"month,omitempty"`      // 1-12, 0 when unset
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// HasMonth reports whether the spec is in single-month mode.
func (t TimeSpec) HasMonth() bool {
	return t.Month >= 1 && t.Month <= 12
}

// HasRange reports whether the spec is in date-range mode.
func (t TimeSpec) HasRange() bool {
	return t.StartDate != "" && t.EndDate != ""
}

// IsZero reports whether no time specification is present at all.
func (t TimeSpec) IsZero() bool {
	return !t.HasMonth() && !t.HasRange()
}

// WithMonth returns a copy in single-month mode.
func (t TimeSpec) WithMonth(month int) TimeSpec {
	return TimeSpec{Month: month}
}

// WithRange returns a copy in date-range mode.
func (t TimeSpec) WithRange(start, end string) TimeSpec {
	return TimeSpec{StartDate: start, EndDate: end}
}
