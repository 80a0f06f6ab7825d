package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationScoreColor_RelativeRamp(t *testing.T) {
	// Normalized against the result's own min/max: [0, 0.25, 0.5, 0.75, 1.0].
	scores := []float64{10, 20, 30, 40, 50}
	want := []Color{ColorRed, ColorOrange, ColorYellow, ColorLightGreen, ColorGreen}

	for i, score := range scores {
		assert.Equal(t, want[i], LocationScoreColor(score, 10, 50), "score %g", score)
	}
}

func TestLocationScoreColor_DegenerateRange(t *testing.T) {
	assert.Equal(t, ColorGreen, LocationScoreColor(42, 42, 42))
}

func TestLocationScoreColor_TierBoundaries(t *testing.T) {
	// min=0, max=100 makes normalized == score/100.
	assert.Equal(t, ColorGreen, LocationScoreColor(80, 0, 100))
	assert.Equal(t, ColorLightGreen, LocationScoreColor(79.9, 0, 100))
	assert.Equal(t, ColorLightGreen, LocationScoreColor(60, 0, 100))
	assert.Equal(t, ColorYellow, LocationScoreColor(40, 0, 100))
	assert.Equal(t, ColorOrange, LocationScoreColor(20, 0, 100))
	assert.Equal(t, ColorRed, LocationScoreColor(19.9, 0, 100))
}

func TestTimeScoreColor_AbsoluteRamp(t *testing.T) {
	scores := []float64{45, 55, 65, 75, 85}
	want := []Color{ColorRed, ColorOrange, ColorYellow, ColorLightGreen, ColorGreen}

	for i, score := range scores {
		assert.Equal(t, want[i], TimeScoreColor(score), "score %g", score)
	}
}

func TestTimeScoreColor_Boundaries(t *testing.T) {
	assert.Equal(t, ColorGreen, TimeScoreColor(80))
	assert.Equal(t, ColorLightGreen, TimeScoreColor(70))
	assert.Equal(t, ColorYellow, TimeScoreColor(60))
	assert.Equal(t, ColorOrange, TimeScoreColor(50))
	assert.Equal(t, ColorRed, TimeScoreColor(49.99))
}

func TestColor_Hex(t *testing.T) {
	for _, c := range []Color{ColorGreen, ColorLightGreen, ColorYellow, ColorOrange, ColorRed} {
		assert.NotEmpty(t, c.Hex())
	}
}
