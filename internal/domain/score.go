package domain

// band is one rung of a penalty ladder: the first rung whose threshold is
// met contributes its points, remaining rungs are skipped.
type band struct {
	threshold float64
	points    int
}

// Ladders are ordered most-severe first. Keep them sorted descending; the
// lookup takes the first match.
var (
	windBands = []band{
		{1.0, 40}, // at or over the pad limit
		{0.8, 20},
		{0.6, 10},
	}
	precipBands = []band{
		{5.0, 50}, // 5x over limit, scrub territory
		{2.0, 35},
		{1.0, 25},
		{0.7, 15},
	}
	kpBands = []band{
		{7, 30}, // severe geomagnetic storm
		{5, 15},
		{3, 5},
	}
)

const (
	solarStormPoints       = 20
	conjunctionHighPoints  = 40
	conjunctionClosePoints = 10
	tempOutsidePoints      = 25
	tempNearBoundPoints    = 10
	tempMarginC            = 5.0
)

// RiskScore maps the three observations and the site limits onto a 0–100
// risk score, 0 being perfect conditions. Pure and deterministic; callers
// guarantee strictly positive limits (see Limits).
func RiskScore(wx WeatherObservation, sw SpaceWeatherObservation, cj ConjunctionAssessment, limits Limits) int {
	score := ladderPoints(wx.WindSpeedKn/limits.MaxWindKn, windBands)
	score += ladderPoints(wx.PrecipitationMM/limits.MaxPrecipitationMM, precipBands)
	score += ceilingPoints(wx.CloudCeilingFt, limits.MaxCloudCeilingFt)
	score += temperaturePoints(wx.TemperatureC, limits)

	score += ladderPoints(sw.KpIndex, kpBands)
	if sw.HasSolarStorm {
		score += solarStormPoints
	}

	switch {
	case cj.HasHighRisk:
		score += conjunctionHighPoints
	case cj.CloseApproaches > 0:
		score += conjunctionClosePoints
	}

	return min(score, 100)
}

func ladderPoints(value float64, bands []band) int {
	for _, b := range bands {
		if value >= b.threshold {
			return b.points
		}
	}
	return 0
}

// ceilingPoints penalizes low cloud ceilings on an absolute scale; only the
// mildest rung depends on the site limit. Lower ceiling is worse, so the
// ladder checks below-threshold, still most-severe first.
func ceilingPoints(ceilingFt, limitFt float64) int {
	absolute := []band{
		{1000, 40},
		{2000, 30},
		{3000, 20},
	}
	for _, b := range absolute {
		if ceilingFt < b.threshold {
			return b.points
		}
	}
	if ceilingFt < limitFt {
		return 10
	}
	return 0
}

func temperaturePoints(tempC float64, limits Limits) int {
	switch {
	case tempC > limits.MaxTempC || tempC < limits.MinTempC:
		return tempOutsidePoints
	case tempC > limits.MaxTempC-tempMarginC || tempC < limits.MinTempC+tempMarginC:
		return tempNearBoundPoints
	default:
		return 0
	}
}

// ClassifyScore maps a risk score onto a verdict. Boundaries are inclusive
// on the worse side: 70 is NO-GO, 40 is MARGINAL.
func ClassifyScore(score int) Verdict {
	switch {
	case score >= 70:
		return VerdictNoGo
	case score >= 40:
		return VerdictMarginal
	default:
		return VerdictGo
	}
}
