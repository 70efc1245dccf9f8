// Package decision orchestrates a single launch clearance decision: site
// lookup, concurrent data fetches, scoring, and assembly of the final
// record.
package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/launch-clearance/internal/domain"
	"github.com/couchcryptid/launch-clearance/internal/observability"
)

// WeatherSource fetches surface weather for a pad at a given time.
type WeatherSource interface {
	GetWeather(ctx context.Context, lat, lon float64, t time.Time) (domain.WeatherObservation, error)
}

// SpaceWeatherSource fetches the current global geomagnetic state.
type SpaceWeatherSource interface {
	GetSpaceWeather(ctx context.Context) (domain.SpaceWeatherObservation, error)
}

// ConjunctionSource fetches the conjunction assessment for a window around
// the launch time.
type ConjunctionSource interface {
	GetConjunctionRisk(ctx context.Context, lat, lon float64, t time.Time) (domain.ConjunctionAssessment, error)
}

// SiteRegistry resolves site codes to launch sites.
type SiteRegistry interface {
	Lookup(code string) (domain.LaunchSite, bool)
}

// Publisher emits a completed decision to downstream consumers.
type Publisher interface {
	PublishDecision(ctx context.Context, d domain.Decision) error
}

// Decider ties the site registry and the three data sources into one
// go/no-go decision per call. It holds no mutable state; concurrent calls
// are independent.
type Decider struct {
	registry     SiteRegistry
	weather      WeatherSource
	spaceWeather SpaceWeatherSource
	conjunction  ConjunctionSource
	publisher    Publisher // nil disables publishing
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// New creates a Decider. Pass a nil publisher to disable decision
// publishing.
func New(
	registry SiteRegistry,
	weather WeatherSource,
	spaceWeather SpaceWeatherSource,
	conjunction ConjunctionSource,
	publisher Publisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Decider {
	return &Decider{
		registry:     registry,
		weather:      weather,
		spaceWeather: spaceWeather,
		conjunction:  conjunction,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
	}
}

// Decide produces the clearance decision for a site and launch time.
//
// An unknown site code returns a well-formed ERROR decision without
// touching any data source. A failing data source aborts the decision and
// returns the error; no partial or default-filled decision is ever
// produced, since a fabricated score could misrepresent safety-critical
// state.
func (d *Decider) Decide(ctx context.Context, siteCode string, launchTime time.Time) (domain.Decision, error) {
	site, ok := d.registry.Lookup(siteCode)
	if !ok {
		d.logger.Warn("unknown launch site", "site", siteCode)
		dec := domain.NewUnknownSiteDecision(siteCode, launchTime)
		d.metrics.Decisions.WithLabelValues(string(dec.Verdict)).Inc()
		return dec, nil
	}

	start := time.Now()

	snap, err := d.fetchAll(ctx, site, launchTime)
	if err != nil {
		d.metrics.DecisionErrors.Inc()
		d.logger.Error("decision aborted", "site", siteCode, "error", err)
		return domain.Decision{}, err
	}

	dec := domain.NewDecision(site, launchTime, snap)

	d.metrics.DecisionDuration.Observe(time.Since(start).Seconds())
	d.metrics.Decisions.WithLabelValues(string(dec.Verdict)).Inc()
	d.logger.Info("decision made",
		"site", siteCode,
		"launch_time", launchTime,
		"verdict", dec.Verdict,
		"risk_score", dec.RiskScore,
	)

	d.publish(ctx, dec)
	return dec, nil
}

// fetchAll runs the three source queries concurrently and joins them. The
// first failure cancels the remaining fetches via the group context.
func (d *Decider) fetchAll(ctx context.Context, site domain.LaunchSite, launchTime time.Time) (domain.DataSnapshot, error) {
	var snap domain.DataSnapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.timedFetch("weather", func() error {
			wx, err := d.weather.GetWeather(ctx, site.Lat, site.Lon, launchTime)
			if err != nil {
				return fmt.Errorf("fetch weather: %w", err)
			}
			snap.Weather = wx
			return nil
		})
	})

	g.Go(func() error {
		return d.timedFetch("space_weather", func() error {
			sw, err := d.spaceWeather.GetSpaceWeather(ctx)
			if err != nil {
				return fmt.Errorf("fetch space weather: %w", err)
			}
			snap.SpaceWeather = sw
			return nil
		})
	})

	g.Go(func() error {
		return d.timedFetch("conjunction", func() error {
			cj, err := d.conjunction.GetConjunctionRisk(ctx, site.Lat, site.Lon, launchTime)
			if err != nil {
				return fmt.Errorf("fetch conjunction risk: %w", err)
			}
			snap.Conjunction = cj
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return domain.DataSnapshot{}, err
	}
	return snap, nil
}

func (d *Decider) timedFetch(source string, fn func() error) error {
	start := time.Now()
	err := fn()
	d.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.FetchErrors.WithLabelValues(source).Inc()
	}
	return err
}

// publish sends the decision downstream, best effort. A publish failure is
// logged but never fails the decision; the caller already has the record.
func (d *Decider) publish(ctx context.Context, dec domain.Decision) {
	if d.publisher == nil {
		return
	}

	// Detach from the request so an already-answered caller going away
	// does not drop the event mid-write.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := d.publisher.PublishDecision(pubCtx, dec); err != nil {
		d.metrics.PublishErrors.Inc()
		d.logger.Warn("decision publish failed", "site", dec.SiteCode, "error", err)
		return
	}
	d.metrics.DecisionsPublished.Inc()
}

// CheckReadiness reports whether the service can take decision requests.
// The decider is stateless and its dependencies are static, so it is ready
// as soon as it is constructed.
func (d *Decider) CheckReadiness(_ context.Context) error {
	return nil
}
