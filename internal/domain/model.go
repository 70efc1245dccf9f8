package domain

import "time"

// Limits holds a launch site's weather commit criteria. Ratio-based checks
// divide by the max fields, so every limit must be strictly positive.
type Limits struct {
	MaxWindKn          float64 `json:"max_wind_kn" yaml:"max_wind_kn"`
	MaxPrecipitationMM float64 `json:"max_precipitation_mm" yaml:"max_precipitation_mm"`
	MaxCloudCeilingFt  float64 `json:"max_cloud_ceiling_ft" yaml:"max_cloud_ceiling_ft"`
	MaxTempC           float64 `json:"max_temp_c" yaml:"max_temp_c"`
	MinTempC           float64 `json:"min_temp_c" yaml:"min_temp_c"`
}

// LaunchSite is a registered launch complex with its pad coordinates and
// commit criteria. Sites come from static configuration and are read-only.
type LaunchSite struct {
	Code   string  `json:"code" yaml:"-"`
	Name   string  `json:"name" yaml:"name"`
	Lat    float64 `json:"lat" yaml:"lat"`
	Lon    float64 `json:"lon" yaml:"lon"`
	Limits Limits  `json:"limits" yaml:"limits"`
}

// WeatherObservation is a surface weather snapshot at a pad for a given time.
type WeatherObservation struct {
	WindSpeedKn     float64 `json:"wind_speed_kn"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	CloudCeilingFt  float64 `json:"cloud_ceiling_ft"`
	TemperatureC    float64 `json:"temperature_c"`
}

// SpaceWeatherObservation is the current global geomagnetic state.
// Not site-specific.
type SpaceWeatherObservation struct {
	KpIndex       float64 `json:"kp_index"`
	HasSolarStorm bool    `json:"has_solar_storm"`
}

// ConjunctionAssessment summarizes predicted close approaches in a window
// around the requested launch time.
type ConjunctionAssessment struct {
	HasHighRisk     bool `json:"has_high_risk"`
	CloseApproaches int  `json:"close_approaches"`
}

// Verdict is the clearance outcome for a launch opportunity.
type Verdict string

const (
	VerdictGo       Verdict = "GO"
	VerdictMarginal Verdict = "MARGINAL"
	VerdictNoGo     Verdict = "NO-GO"
	VerdictError    Verdict = "ERROR"
)

// DataSnapshot carries the raw inputs a decision was made from, kept on the
// record for auditability.
type DataSnapshot struct {
	Weather      WeatherObservation      `json:"weather"`
	SpaceWeather SpaceWeatherObservation `json:"space_weather"`
	Conjunction  ConjunctionAssessment   `json:"conjunction"`
}

// Decision is the assembled clearance record. RuleCitations is never nil:
// empty for ERROR decisions, otherwise at least the nominal sentinel.
// Data is nil only for ERROR decisions, which never fetched anything.
type Decision struct {
	SiteCode      string        `json:"site_code"`
	LaunchTime    time.Time     `json:"launch_time"`
	Verdict       Verdict       `json:"verdict"`
	RiskScore     int           `json:"risk_score"`
	Why           string        `json:"why"`
	RuleCitations []string      `json:"rule_citations"`
	Data          *DataSnapshot `json:"data,omitempty"`
	DecidedAt     time.Time     `json:"decided_at"`
}
