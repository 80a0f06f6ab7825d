package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodLabel_Buckets(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "excellent"},
		{80, "excellent"},
		{79.9, "good"},
		{65, "good"},
		{64.9, "neutral"},
		{50, "neutral"},
		{49.9, "low"},
		{35, "low"},
		{34.9, "poor"},
		{0, "poor"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodLabel(tt.score), "score=%v", tt.score)
	}
}

func TestRiskColor(t *testing.T) {
	assert.Equal(t, ColorGreen, RiskColor(RiskLow))
	assert.Equal(t, ColorYellow, RiskColor(RiskMedium))
	assert.Equal(t, ColorRed, RiskColor(RiskHigh))
	assert.Equal(t, ColorRed, RiskColor(RiskLevel("unheard-of")))
}

func TestFabricIcon(t *testing.T) {
	assert.Equal(t, "🌿", FabricIcon("cotton"))
	assert.Equal(t, "🐑", FabricIcon("  Wool "))
	assert.Equal(t, "👕", FabricIcon("mystery-blend"))
	assert.Equal(t, "👕", FabricIcon(""))
}
