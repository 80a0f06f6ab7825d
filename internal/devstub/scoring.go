// Package devstub is a self-contained analysis backend for local
// development and demos. It serves the same three endpoints and wire
// schemas as the production service, but scores a deterministic synthetic
// climate instead of real observation data.
package devstub

import "math"

// ScoreLowIsBetter maps value onto 0-100 where lower input scores higher,
// normalized over [min, max]. Cloud cover for stargazing is the canonical
// example.
func ScoreLowIsBetter(value, min, max float64) float64 {
	if max == min {
		return 100
	}
	normalized := clamp01((value - min) / (max - min))
	return (1 - normalized) * 100
}

// ScoreHighIsBetter maps value onto 0-100 where higher input scores higher.
func ScoreHighIsBetter(value, min, max float64) float64 {
	if max == min {
		return 100
	}
	return clamp01((value-min)/(max-min)) * 100
}

// ScoreOptimalRange gives 100 inside [optimalMin, optimalMax] and decays
// gaussian outside, with the falloff distance proportional to the range
// width times falloffRate.
func ScoreOptimalRange(value, optimalMin, optimalMax, falloffRate float64) float64 {
	if value >= optimalMin && value <= optimalMax {
		return 100
	}

	var distance float64
	if value < optimalMin {
		distance = optimalMin - value
	} else {
		distance = value - optimalMax
	}
	rangeWidth := optimalMax - optimalMin

	score := 100 * math.Exp(-math.Pow(distance/(rangeWidth*falloffRate), 2))
	return math.Max(0, score)
}

// WeightedScore averages per-parameter scores by their weights. Parameters
// present in weights but absent from scores count as zero.
func WeightedScore(scores, weights map[string]float64) float64 {
	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}

	var weightedSum float64
	for id, w := range weights {
		weightedSum += scores[id] * w
	}
	return weightedSum / totalWeight
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
