package domain

import (
	"fmt"
	"time"
)

// NewDecision assembles a complete clearance record for a known site from
// the three fetched observations: score, verdict, explanation, citations,
// and the raw data snapshot.
func NewDecision(site LaunchSite, launchTime time.Time, snap DataSnapshot) Decision {
	score := RiskScore(snap.Weather, snap.SpaceWeather, snap.Conjunction, site.Limits)
	return Decision{
		SiteCode:      site.Code,
		LaunchTime:    launchTime,
		Verdict:       ClassifyScore(score),
		RiskScore:     score,
		Why:           Explain(snap.Weather, snap.SpaceWeather, snap.Conjunction, site.Limits),
		RuleCitations: RuleCitations(snap.Weather, snap.SpaceWeather, snap.Conjunction, site.Limits),
		Data:          &snap,
		DecidedAt:     clock.Now().UTC(),
	}
}

// NewUnknownSiteDecision builds the synthetic ERROR record returned when a
// site code is not registered. Score pins to 100 and the citation list is
// empty (not nil) since no rules were evaluated.
func NewUnknownSiteDecision(siteCode string, launchTime time.Time) Decision {
	return Decision{
		SiteCode:      siteCode,
		LaunchTime:    launchTime,
		Verdict:       VerdictError,
		RiskScore:     100,
		Why:           fmt.Sprintf("Unknown launch site: %s", siteCode),
		RuleCitations: []string{},
		DecidedAt:     clock.Now().UTC(),
	}
}
