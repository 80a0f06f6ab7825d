package mapview

// Color is one step of the fixed five-color ramp used for score markers,
// best to worst.
type Color string

const (
	ColorGreen      Color = "green"
	ColorLightGreen Color = "light-green"
	ColorYellow     Color = "yellow"
	ColorOrange     Color = "orange"
	ColorRed        Color = "red"
)

// Hex returns the marker fill color for map rendering.
func (c Color) Hex() string {
	switch c {
	case ColorGreen:
		return "#2ecc71"
	case ColorLightGreen:
		return "#a3e635"
	case ColorYellow:
		return "#facc15"
	case ColorOrange:
		return "#fb923c"
	default:
		return "#ef4444"
	}
}

// LocationScoreColor buckets a location score against the result's own
// min/max. Location scores are meaningful only relative to the other
// locations in the same query, so the normalization is per-response:
// (score-min)/(max-min), then tiers at 0.8/0.6/0.4/0.2.
//
// A degenerate response where every score is equal maps to green; there is
// no ordering to display.
func LocationScoreColor(score, min, max float64) Color {
	if max <= min {
		return ColorGreen
	}
	norm := (score - min) / (max - min)
	switch {
	case norm >= 0.8:
		return ColorGreen
	case norm >= 0.6:
		return ColorLightGreen
	case norm >= 0.4:
		return ColorYellow
	case norm >= 0.2:
		return ColorOrange
	default:
		return ColorRed
	}
}

// TimeScoreColor buckets a time score on the absolute 0-100 scale at
// 80/70/60/50. Unlike location scores, time scores are an absolute quality
// grade comparable across queries, so no per-response normalization
// applies.
func TimeScoreColor(score float64) Color {
	switch {
	case score >= 80:
		return ColorGreen
	case score >= 70:
		return ColorLightGreen
	case score >= 60:
		return ColorYellow
	case score >= 50:
		return ColorOrange
	default:
		return ColorRed
	}
}
