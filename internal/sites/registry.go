// Package sites provides the static launch site registry consumed by the
// decision engine. Sites and their weather commit criteria load once at
// startup from YAML and are immutable afterwards.
package sites

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/launch-clearance/internal/domain"
)

//go:embed sites.yaml
var defaultSites []byte

// Registry is a read-only lookup table from site code to launch site.
type Registry struct {
	sites map[string]domain.LaunchSite
}

// Load builds a registry from the YAML file at path, or from the embedded
// default site list when path is empty. Limits are validated here so the
// scoring functions can divide by them without guards.
func Load(path string) (*Registry, error) {
	data := defaultSites
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sites file: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a registry from raw YAML.
func Parse(data []byte) (*Registry, error) {
	var raw map[string]domain.LaunchSite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse sites: no sites defined")
	}

	reg := &Registry{sites: make(map[string]domain.LaunchSite, len(raw))}
	for code, site := range raw {
		site.Code = code
		if err := validateLimits(site.Limits); err != nil {
			return nil, fmt.Errorf("site %s: %w", code, err)
		}
		reg.sites[code] = site
	}
	return reg, nil
}

// Lookup resolves a site code. The boolean reports whether the code is
// registered.
func (r *Registry) Lookup(code string) (domain.LaunchSite, bool) {
	site, ok := r.sites[code]
	return site, ok
}

// Codes returns all registered site codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.sites))
	for code := range r.sites {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// validateLimits rejects configurations the scorer cannot safely consume.
// The max fields are ratio denominators and must be strictly positive;
// the temperature window must be non-degenerate. Missing or zero values
// are configuration errors, not runtime conditions.
func validateLimits(l domain.Limits) error {
	if l.MaxWindKn <= 0 {
		return fmt.Errorf("max_wind_kn must be positive, got %g", l.MaxWindKn)
	}
	if l.MaxPrecipitationMM <= 0 {
		return fmt.Errorf("max_precipitation_mm must be positive, got %g", l.MaxPrecipitationMM)
	}
	if l.MaxCloudCeilingFt <= 0 {
		return fmt.Errorf("max_cloud_ceiling_ft must be positive, got %g", l.MaxCloudCeilingFt)
	}
	if l.MinTempC >= l.MaxTempC {
		return fmt.Errorf("min_temp_c %g must be below max_temp_c %g", l.MinTempC, l.MaxTempC)
	}
	return nil
}
