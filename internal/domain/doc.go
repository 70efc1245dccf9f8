// Package domain models launch go/no-go clearance decisions.
//
// # Inputs
//
// A decision combines three observations against a launch site's weather
// commit criteria:
//
//	WeatherObservation       surface conditions at the pad (Meteomatics)
//	SpaceWeatherObservation  planetary Kp index and solar storm state (NOAA SWPC)
//	ConjunctionAssessment    predicted close approaches near launch time (Space-Track CDMs)
//
// Weather is site- and time-specific. Space weather is a process-wide
// snapshot: geomagnetic disturbance is global, so the same observation
// applies to every site. Conjunction data covers a window around the
// requested launch time.
//
// # Risk scoring
//
// [RiskScore] accumulates flat point penalties across five independent
// factor groups and clamps the sum to [0,100]. Each group is a discrete
// band ladder evaluated top-down, first match wins; bands are deliberately
// not interpolated so that a reviewer can reproduce any score by hand.
//
//	Wind (observed/limit):     ≥1.0 +40 | ≥0.8 +20 | ≥0.6 +10
//	Precip (observed/limit):   ≥5.0 +50 | ≥2.0 +35 | ≥1.0 +25 | ≥0.7 +15
//	Ceiling (absolute ft):     <1000 +40 | <2000 +30 | <3000 +20 | <limit +10
//	Temperature:               outside [min,max] +25 | within 5 °C of a bound +10
//	Kp index:                  ≥7 +30 | ≥5 +15 | ≥3 +5; active solar storm +20 on top
//	Conjunction:               high risk +40 | any close approach +10
//
// All limit fields must be strictly positive; the site registry enforces
// this at load time and the scorer assumes it.
//
// # Verdicts
//
// [ClassifyScore] partitions the score: ≥70 NO-GO, ≥40 MARGINAL, below GO.
// ERROR is reserved for decisions that never reached scoring (unknown site).
//
// # Explanations and citations
//
// [Explain] and [RuleCitations] re-check the raw inputs with looser
// triggers than the scoring bands (wind at 0.8× limit, precipitation at
// 0.5× limit, any ceiling below the site limit, temperature within 5 °C of
// a bound, Kp ≥ 5). The mismatch is intentional: issues surface in the
// report while the score is still comfortably in GO territory, so crews
// see what is trending bad before it costs points. Both functions return a
// fixed sentinel instead of an empty result when nothing triggers.
//
// Citation texts reference NASA-STD-4010A (natural environments launch
// commit criteria), vehicle standard operating procedure wind limits, SWPC
// geomagnetic storm advisories, and COLA (collision avoidance) analysis.
package domain
