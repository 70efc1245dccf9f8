package domain

import (
	"fmt"
	"strings"
)

// NominalExplanation is returned by Explain when nothing triggers.
const NominalExplanation = "All parameters within acceptable limits for launch"

// NominalCitation is the single element RuleCitations returns when no rule
// applies; the citation list is never empty.
const NominalCitation = "All parameters nominal"

// Report triggers are looser than the scoring bands on purpose: wind and
// precipitation flag at 0.8x and 0.5x of the limit, any ceiling below the
// site limit flags, Kp flags from 5. Early warnings show up in the report
// while the score is still GO. Do not fold these into the score ladders.
const (
	windWarnRatio   = 0.8
	precipWarnRatio = 0.5
	kpWarnIndex     = 5.0
)

// Explain produces the human-readable issue summary for a decision, one
// sentence per triggered condition joined with "; ", in fixed order: wind,
// precipitation, ceiling, high temperature, low temperature, Kp, solar
// storm, conjunction.
func Explain(wx WeatherObservation, sw SpaceWeatherObservation, cj ConjunctionAssessment, limits Limits) string {
	var issues []string

	if wx.WindSpeedKn >= limits.MaxWindKn*windWarnRatio {
		issues = append(issues, fmt.Sprintf("Wind speed %.1f kn approaching limit %g kn", wx.WindSpeedKn, limits.MaxWindKn))
	}
	if wx.PrecipitationMM >= limits.MaxPrecipitationMM*precipWarnRatio {
		issues = append(issues, fmt.Sprintf("Precipitation %.1f mm near limit %g mm", wx.PrecipitationMM, limits.MaxPrecipitationMM))
	}
	if wx.CloudCeilingFt < limits.MaxCloudCeilingFt {
		issues = append(issues, fmt.Sprintf("Cloud ceiling %.0f ft below limit %g ft", wx.CloudCeilingFt, limits.MaxCloudCeilingFt))
	}
	if wx.TemperatureC > limits.MaxTempC-tempMarginC {
		issues = append(issues, fmt.Sprintf("Temperature %.1f°C approaching upper limit", wx.TemperatureC))
	}
	if wx.TemperatureC < limits.MinTempC+tempMarginC {
		issues = append(issues, fmt.Sprintf("Temperature %.1f°C approaching lower limit", wx.TemperatureC))
	}

	if sw.KpIndex >= kpWarnIndex {
		issues = append(issues, fmt.Sprintf("Elevated Kp index at %.0f (geomagnetic storm conditions)", sw.KpIndex))
	}
	if sw.HasSolarStorm {
		issues = append(issues, "Active solar storm detected")
	}

	if cj.HasHighRisk {
		issues = append(issues, "High debris conjunction risk detected")
	}

	if len(issues) == 0 {
		return NominalExplanation
	}
	return strings.Join(issues, "; ")
}

// RuleCitations lists the regulatory and operational rules applicable to
// the current conditions, in fixed order: ceiling, wind, precipitation, Kp,
// conjunction. Never returns an empty slice.
func RuleCitations(wx WeatherObservation, sw SpaceWeatherObservation, cj ConjunctionAssessment, limits Limits) []string {
	var citations []string

	if wx.CloudCeilingFt < limits.MaxCloudCeilingFt {
		citations = append(citations, "NASA-STD-4010A §4.1.8 (Thick Cloud Layers)")
	}
	if wx.WindSpeedKn >= limits.MaxWindKn*windWarnRatio {
		citations = append(citations, fmt.Sprintf("Vehicle SOP: Pad Wind Limit %g kn", limits.MaxWindKn))
	}
	if wx.PrecipitationMM >= limits.MaxPrecipitationMM*precipWarnRatio {
		citations = append(citations, "NASA-STD-4010A §4.1.10 (Precipitation)")
	}
	if sw.KpIndex >= kpWarnIndex {
		citations = append(citations, "SWPC Kp advisory - Geomagnetic Storm Watch")
	}
	if cj.HasHighRisk {
		citations = append(citations, "COLA (Collision Avoidance) Analysis - High Risk")
	}

	if len(citations) == 0 {
		return []string{NominalCitation}
	}
	return citations
}
