package mapview

import "strings"

// Display-only categorization helpers for advisor cards. These mirror the
// backend's own buckets so the client labels values the same way the
// analysis describes them; nothing here feeds back into scoring.

// MoodLabel buckets a 0-100 mood score into the predicted-mood wording
// used on mood advisor cards.
func MoodLabel(score float64) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 65:
		return "good"
	case score >= 50:
		return "neutral"
	case score >= 35:
		return "low"
	default:
		return "poor"
	}
}

// RiskLevel is the crop advisor's risk bucket.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskColor maps a risk level onto the marker ramp for badge rendering.
func RiskColor(level RiskLevel) Color {
	switch level {
	case RiskLow:
		return ColorGreen
	case RiskMedium:
		return ColorYellow
	default:
		return ColorRed
	}
}

// fabricIcons maps fabric hints from fashion recommendations to their
// display glyphs. Unknown fabrics fall back to the generic clothing icon.
var fabricIcons = map[string]string{
	"cotton":    "🌿",
	"wool":      "🐑",
	"cashmere":  "🐑",
	"silk":      "🪢",
	"denim":     "👖",
	"leather":   "🧥",
	"down":      "🪶",
	"fleece":    "🧣",
	"gore_tex":  "🌧️",
	"nylon":     "🧵",
	"polyester": "🧵",
	"spandex":   "🤸",
	"linen":     "🌾",
}

// FabricIcon returns the glyph for a fabric hint, or the generic clothing
// icon when the fabric is unknown.
func FabricIcon(fabric string) string {
	if icon, ok := fabricIcons[strings.ToLower(strings.TrimSpace(fabric))]; ok {
		return icon
	}
	return "👕"
}
