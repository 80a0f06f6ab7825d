package devstub

import (
	"sort"

	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// scoringMethod selects how a parameter value maps to a 0-100 score.
type scoringMethod string

const (
	lowIsBetter  scoringMethod = "low_is_better"
	highIsBetter scoringMethod = "high_is_better"
	optimalRange scoringMethod = "optimal_range"
)

const defaultFalloffRate = 2.0

// paramConfig is one weighted scoring rule within a vibe profile.
type paramConfig struct {
	ID      string
	Weight  float64
	Method  scoringMethod
	Min     float64 // low/high_is_better normalization bounds
	Max     float64
	OptMin  float64 // optimal_range bounds
	OptMax  float64
	Falloff float64 // 0 means defaultFalloffRate
}

// vibeConfig is a scoring profile or an advisor persona entry.
type vibeConfig struct {
	ID          string
	Name        string
	Description string
	Kind        types.VibeKind
	Params      []paramConfig // scoring rules for standard vibes
	AdvisorType string        // routing key for advisor vibes
}

// catalog mirrors the production vibe dictionary: five standard profiles
// and three advisor personas.
var catalog = []vibeConfig{
	{
		ID: "stargazing", Name: "Stargazing", Kind: types.VibeKindStandard,
		Description: "Clear, dry nights for watching the sky",
		Params: []paramConfig{
			{ID: ParamCloudAmount, Weight: 3, Method: lowIsBetter, Min: 0, Max: 100},
			{ID: ParamPrecipitation, Weight: 2, Method: lowIsBetter, Min: 0, Max: 20},
			{ID: ParamHumidity, Weight: 1, Method: lowIsBetter, Min: 0, Max: 100},
		},
	},
	{
		ID: "beach_day", Name: "Beach Day", Kind: types.VibeKindStandard,
		Description: "Warm, sunny, and calm by the water",
		Params: []paramConfig{
			{ID: ParamTemp, Weight: 3, Method: optimalRange, OptMin: 24, OptMax: 32},
			{ID: ParamSunlight, Weight: 2, Method: highIsBetter, Min: 0, Max: 9},
			{ID: ParamPrecipitation, Weight: 2, Method: lowIsBetter, Min: 0, Max: 20},
			{ID: ParamWindSpeed, Weight: 1, Method: optimalRange, OptMin: 2, OptMax: 6},
		},
	},
	{
		ID: "cozy_rain", Name: "Cozy Rain", Kind: types.VibeKindStandard,
		Description: "Steady rain to stay in and listen to",
		Params: []paramConfig{
			{ID: ParamPrecipitation, Weight: 3, Method: highIsBetter, Min: 0, Max: 15},
			{ID: ParamTemp, Weight: 1, Method: optimalRange, OptMin: 15, OptMax: 22},
		},
	},
	{
		ID: "picnic_perfect", Name: "Picnic Perfect", Kind: types.VibeKindStandard,
		Description: "Mild, dry afternoons for eating outside",
		Params: []paramConfig{
			{ID: ParamTemp, Weight: 3, Method: optimalRange, OptMin: 18, OptMax: 26},
			{ID: ParamPrecipitation, Weight: 3, Method: lowIsBetter, Min: 0, Max: 10},
			{ID: ParamWindSpeed, Weight: 1, Method: lowIsBetter, Min: 0, Max: 10},
		},
	},
	{
		ID: "kite_flying", Name: "Kite Flying", Kind: types.VibeKindStandard,
		Description: "A good steady breeze under open skies",
		Params: []paramConfig{
			{ID: ParamWindSpeed, Weight: 3, Method: optimalRange, OptMin: 4, OptMax: 9},
			{ID: ParamPrecipitation, Weight: 2, Method: lowIsBetter, Min: 0, Max: 10},
			{ID: ParamCloudAmount, Weight: 1, Method: lowIsBetter, Min: 0, Max: 100},
		},
	},
	{
		ID: "fashion", Name: "Fashion Stylist", Kind: types.VibeKindAdvisor,
		Description: "Weather-appropriate outfit suggestions",
		AdvisorType: "fashion",
	},
	{
		ID: "crop", Name: "Crop & Farming Advisor", Kind: types.VibeKindAdvisor,
		Description: "Agricultural guidance for common crops",
		AdvisorType: "crop",
	},
	{
		ID: "mood", Name: "Mood Predictor", Kind: types.VibeKindAdvisor,
		Description: "Weather-driven mood and activity tips",
		AdvisorType: "mood",
	},
}

func vibeByID(id string) (*vibeConfig, error) {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, errors.Newf(errors.CodeVibeUnknown, "Vibe '%s' not found. Available vibes: %v", id, vibeIDs())
}

func vibeIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, v := range catalog {
		ids = append(ids, v.ID)
	}
	sort.Strings(ids)
	return ids
}

// Vibes lists the catalog for selection UIs.
func Vibes() []types.Vibe {
	out := make([]types.Vibe, 0, len(catalog))
	for _, v := range catalog {
		out = append(out, types.Vibe{ID: v.ID, Name: v.Name, Kind: v.Kind})
	}
	return out
}

// VibeByID resolves a catalog entry to the selection type.
func VibeByID(id string) (*types.Vibe, error) {
	cfg, err := vibeByID(id)
	if err != nil {
		return nil, err
	}
	return &types.Vibe{ID: cfg.ID, Name: cfg.Name, Kind: cfg.Kind}, nil
}

// vibeScore computes the weighted 0-100 score of a standard vibe against
// a set of parameter values. Advisor vibes have no score.
func (v *vibeConfig) vibeScore(values map[string]float64) (float64, error) {
	if v.Kind == types.VibeKindAdvisor {
		return 0, errors.Newf(errors.CodeValidation, "advisor '%s' uses custom logic, not scoring", v.ID)
	}

	scores := make(map[string]float64, len(v.Params))
	weights := make(map[string]float64, len(v.Params))
	for _, p := range v.Params {
		value, ok := values[p.ID]
		if !ok {
			continue
		}

		var score float64
		switch p.Method {
		case lowIsBetter:
			score = ScoreLowIsBetter(value, p.Min, p.Max)
		case highIsBetter:
			score = ScoreHighIsBetter(value, p.Min, p.Max)
		case optimalRange:
			falloff := p.Falloff
			if falloff == 0 {
				falloff = defaultFalloffRate
			}
			score = ScoreOptimalRange(value, p.OptMin, p.OptMax, falloff)
		}

		scores[p.ID] = score
		weights[p.ID] = p.Weight
	}
	return WeightedScore(scores, weights), nil
}
