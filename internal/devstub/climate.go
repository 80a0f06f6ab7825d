package devstub

import "math"

// NASA-POWER-style parameter identifiers used throughout the stub.
const (
	ParamTemp          = "T2M"               // mean air temperature, °C
	ParamTempMin       = "T2M_MIN"           // monthly minimum temperature, °C
	ParamTempMax       = "T2M_MAX"           // monthly maximum temperature, °C
	ParamPrecipitation = "PRECTOTCORR"       // precipitation, mm/day
	ParamCloudAmount   = "CLOUD_AMT"         // cloud cover, percent
	ParamSunlight      = "ALLSKY_SFC_SW_DWN" // surface solar irradiance, kWh/m²/day
	ParamWindSpeed     = "WS2M"              // wind speed at 2m, m/s
	ParamHumidity      = "RH2M"              // relative humidity, percent
)

// Climate returns synthetic monthly-mean weather for a point. The model is
// a latitude-driven seasonal sinusoid with a small position-dependent
// perturbation so nearby grid points differ; the same inputs always
// produce the same outputs.
func Climate(lat, lon float64, month int) map[string]float64 {
	season := seasonality(lat, month)
	jitter := spatialJitter(lat, lon)

	// Warmer near the equator, strong seasonal swing at high latitudes.
	temp := 28 - math.Abs(lat)*0.55 + season*(5+math.Abs(lat)*0.25) + jitter*2

	// Wet season follows the warm season; tropics stay wetter year round.
	tropical := math.Max(0, 1-math.Abs(lat)/30)
	precip := 2 + tropical*4 + math.Max(0, season)*5 + jitter*1.5
	precip = math.Max(0, precip)

	// Cloud cover tracks precipitation.
	cloud := clamp(20+precip*7+jitter*10, 0, 100)

	// Sunlight is the inverse of cloudiness, modulated by season.
	sun := clamp(7.5-cloud*0.05+season*1.2, 0.5, 9.5)

	wind := clamp(3.5+math.Abs(jitter)*4+math.Abs(season), 0, 15)
	humidity := clamp(45+tropical*25+precip*2+jitter*5, 10, 100)

	return map[string]float64{
		ParamTemp:          round1(temp),
		ParamTempMin:       round1(temp - 5 - math.Abs(jitter)),
		ParamTempMax:       round1(temp + 5 + math.Abs(jitter)),
		ParamPrecipitation: round1(precip),
		ParamCloudAmount:   round1(cloud),
		ParamSunlight:      round1(sun),
		ParamWindSpeed:     round1(wind),
		ParamHumidity:      round1(humidity),
	}
}

// seasonality is +1 at the height of local summer and -1 in deep winter,
// with the hemispheres half a year apart.
func seasonality(lat float64, month int) float64 {
	phase := 2 * math.Pi * float64(month-7) / 12
	s := math.Cos(phase)
	if lat < 0 {
		s = -s
	}
	return s
}

// spatialJitter is a smooth pseudo-random field in roughly [-1, 1] so the
// scored grid is not flat.
func spatialJitter(lat, lon float64) float64 {
	return 0.5*math.Sin(lat*12.9898+lon*78.233) + 0.5*math.Sin(lat*3.7+lon*1.3)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
