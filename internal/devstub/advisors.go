package devstub

import (
	"fmt"

	"github.com/weathervibes/weathervibes/internal/mapview"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// advisorFunc produces the recommendation cards for one persona.
type advisorFunc func(values map[string]float64, month int) []types.Recommendation

var advisorFuncs = map[string]advisorFunc{
	"fashion": fashionRecommendations,
	"crop":    cropRecommendations,
	"mood":    moodRecommendations,
}

func advisorByType(advisorType string) (advisorFunc, *vibeConfig, error) {
	fn, ok := advisorFuncs[advisorType]
	if !ok {
		return nil, nil, errors.Newf(errors.CodeAdvisorUnknown,
			"Unknown advisor type: %s. Available types: %v", advisorType, advisorTypes())
	}
	for i := range catalog {
		if catalog[i].AdvisorType == advisorType {
			return fn, &catalog[i], nil
		}
	}
	return nil, nil, errors.Newf(errors.CodeAdvisorUnknown, "advisor %s has no catalog entry", advisorType)
}

func advisorTypes() []string {
	return []string{"crop", "fashion", "mood"}
}

// fashionRecommendations suggests an outfit tier by temperature plus
// condition-driven accessories.
func fashionRecommendations(values map[string]float64, _ int) []types.Recommendation {
	temp := values[ParamTemp]
	sun := values[ParamSunlight]
	precip := values[ParamPrecipitation]
	wind := values[ParamWindSpeed]

	var outfit, why, fabric string
	switch {
	case temp < 0:
		outfit, why, fabric = "Winter layers", "Heavy coat, thermal base layer, and insulated boots", "down"
	case temp < 10:
		outfit, why, fabric = "Warm layers", "Sweater under a jacket, long trousers", "wool"
	case temp < 18:
		outfit, why, fabric = "Light layers", "Long sleeve with a cardigan to peel off", "fleece"
	case temp < 25:
		outfit, why, fabric = "Comfortable casuals", "T-shirt weather with a light option for evening", "cotton"
	case temp < 30:
		outfit, why, fabric = "Light summer wear", "Breathable cotton, shorts or a skirt", "cotton"
	default:
		outfit, why, fabric = "Minimal summer wear", "Tank top, sandals, and plenty of water", "linen"
	}

	recs := []types.Recommendation{
		{Item: outfit, Icon: "👕", Description: why, Fabric: fabric},
	}
	if precip > 1 {
		recs = append(recs, types.Recommendation{
			Item: "Umbrella", Icon: "🎒", Fabric: "nylon",
			Description: fmt.Sprintf("Around %.0f mm/day of rain expected", precip),
		})
	}
	if sun > 6 {
		recs = append(recs, types.Recommendation{
			Item: "Sunglasses and a hat", Icon: "🎒", Description: "Strong sun through most of the day",
		})
	}
	if temp < 5 {
		recs = append(recs, types.Recommendation{
			Item: "Scarf and gloves", Icon: "🎒", Description: "Exposed skin chills fast below 5°C", Fabric: "wool",
		})
	}
	if wind > 7 {
		recs = append(recs, types.Recommendation{
			Item: "Windbreaker", Icon: "🎒", Description: "Skip loose layers in this wind", Fabric: "nylon",
		})
	}
	return recs
}

// cropReq captures a crop's tolerances. Precipitation bounds are mm/month.
type cropReq struct {
	name           string
	optTemp        [2]float64
	maxTemp        float64
	optPrecip      [2]float64
	minPrecip      float64
	maxPrecip      float64
	seasonMonths   map[int]bool
	frostSensitive bool
}

// defaultCrop is the tomato profile; the stub's advisor endpoint takes no
// crop selector so it advises for the most common case.
var defaultCrop = cropReq{
	name:           "tomato",
	optTemp:        [2]float64{18, 25},
	maxTemp:        35,
	optPrecip:      [2]float64{25, 50},
	minPrecip:      10,
	maxPrecip:      100,
	seasonMonths:   monthSet(3, 4, 5, 6, 7, 8, 9, 10),
	frostSensitive: true,
}

func monthSet(months ...int) map[int]bool {
	set := make(map[int]bool, len(months))
	for _, m := range months {
		set[m] = true
	}
	return set
}

// cropRecommendations produces alerts and actionable guidance for the
// default crop under the given month's conditions.
func cropRecommendations(values map[string]float64, month int) []types.Recommendation {
	crop := defaultCrop
	tempMin := values[ParamTempMin]
	tempMax := values[ParamTempMax]
	precipMonthly := values[ParamPrecipitation] * 30

	var recs []types.Recommendation
	if crop.frostSensitive && tempMin < 2 {
		recs = append(recs, types.Recommendation{
			Item: fmt.Sprintf("Frost risk for %s", crop.name), Icon: "⚠️", Description: "Priority: high", Risk: "high",
		})
	}
	if tempMax > crop.maxTemp {
		recs = append(recs, types.Recommendation{
			Item: "Heat stress likely", Icon: "⚠️", Description: "Priority: high", Risk: "high",
		})
	}
	if precipMonthly < crop.minPrecip {
		recs = append(recs, types.Recommendation{
			Item: "Drought conditions", Icon: "⚠️", Description: "Priority: medium", Risk: "medium",
		})
	}
	if precipMonthly > crop.maxPrecip {
		recs = append(recs, types.Recommendation{
			Item: "Waterlogging risk", Icon: "⚠️", Description: "Priority: medium", Risk: "medium",
		})
	}

	if crop.seasonMonths[month] {
		recs = append(recs, types.Recommendation{
			Item: fmt.Sprintf("In growing season for %s", crop.name), Icon: "🌱",
			Description: "Good month for planting or field maintenance",
		})
	} else {
		recs = append(recs, types.Recommendation{
			Item: "Outside the growing season", Icon: "🌱",
			Description: fmt.Sprintf("Hold planting of %s until the season opens", crop.name),
		})
	}
	if precipMonthly < crop.optPrecip[0] {
		recs = append(recs, types.Recommendation{
			Item: "Plan supplemental irrigation", Icon: "🌱",
			Description: fmt.Sprintf("Expected %.0f mm/month is below the %.0f mm optimum", precipMonthly, crop.optPrecip[0]),
		})
	}
	return recs
}

// moodRecommendations scores the month's mood outlook and suggests
// matching activities and wellness tips.
func moodRecommendations(values map[string]float64, _ int) []types.Recommendation {
	score := MoodScore(values)
	label := mapview.MoodLabel(score)

	recs := []types.Recommendation{
		{
			Item: fmt.Sprintf("Predicted mood: %s", label), Icon: "🎯",
			Description: fmt.Sprintf("Overall weather-mood score %.0f/100", score),
		},
	}

	sun := values[ParamSunlight]
	precip := values[ParamPrecipitation]
	switch {
	case score >= 65 && precip < 3:
		recs = append(recs,
			types.Recommendation{Item: "Outdoor exercise", Icon: "🎯", Description: "Suitability: high"},
			types.Recommendation{Item: "Get morning daylight within an hour of waking", Icon: "💡", Description: "Wellness tip"},
		)
	case precip >= 5:
		recs = append(recs,
			types.Recommendation{Item: "Indoor hobbies and reading", Icon: "🎯", Description: "Suitability: high"},
			types.Recommendation{Item: "Keep a consistent sleep schedule on grey days", Icon: "💡", Description: "Wellness tip"},
		)
	default:
		recs = append(recs,
			types.Recommendation{Item: "Short walks between showers", Icon: "🎯", Description: "Suitability: medium"},
		)
	}
	if sun < 3 {
		recs = append(recs, types.Recommendation{
			Item: "Consider a light-therapy lamp", Icon: "💡", Description: "Wellness tip",
		})
	}
	return recs
}

// MoodScore is the weather-mood index on 0-100: sunlight and temperature
// dominate, rain and extreme humidity drag it down.
func MoodScore(values map[string]float64) float64 {
	tempScore := ScoreOptimalRange(values[ParamTemp], 18, 26, defaultFalloffRate)
	sunScore := ScoreHighIsBetter(values[ParamSunlight], 0, 9)
	precipScore := ScoreLowIsBetter(values[ParamPrecipitation], 0, 15)
	humidityScore := ScoreOptimalRange(values[ParamHumidity], 30, 60, defaultFalloffRate)

	return tempScore*0.3 + sunScore*0.3 + precipScore*0.25 + humidityScore*0.15
}
