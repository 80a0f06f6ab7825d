package types

// FeatureResult is an immutable snapshot of the last successful backend
// response for one feature, together with the request parameters that
// produced it. Exactly one of Where/When/Advisor is non-nil, matching
// Feature. Results are replaced wholesale, never merged.
type FeatureResult struct {
	Feature Feature

	// Params is the request that produced the response, kept so panels can
	// label the result ("stargazing, July") without re-deriving anything.
	Params interface{}

	Where   *WhereResponse
	When    *WhenResponse
	Advisor *AdvisorResponse
}

// NewWhereResult wraps a where response as a FeatureResult.
func NewWhereResult(req WhereRequest, resp *WhereResponse) *FeatureResult {
	return &FeatureResult{Feature: FeatureWhere, Params: req, Where: resp}
}

// NewWhenResult wraps a when response as a FeatureResult.
func NewWhenResult(req WhenRequest, resp *WhenResponse) *FeatureResult {
	return &FeatureResult{Feature: FeatureWhen, Params: req, When: resp}
}

// NewAdvisorResult wraps an advisor response as a FeatureResult.
func NewAdvisorResult(req AdvisorRequest, resp *AdvisorResponse) *FeatureResult {
	return &FeatureResult{Feature: FeatureAdvisor, Params: req, Advisor: resp}
}

// Points returns the map-renderable points of the result: scored grid
// points for where, the queried location for when and advisor. Nil when the
// result carries nothing the map can draw.
func (r *FeatureResult) Points() []LocationScore {
	if r == nil {
		return nil
	}
	switch {
	case r.Where != nil:
		return r.Where.Scores
	case r.When != nil:
		return []LocationScore{{Lat: r.When.Location.Lat, Lon: r.When.Location.Lon}}
	case r.Advisor != nil:
		return []LocationScore{{Lat: r.Advisor.Location.Lat, Lon: r.Advisor.Location.Lon}}
	}
	return nil
}
