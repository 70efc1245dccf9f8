package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the clearance
// service.
type Metrics struct {
	Decisions        *prometheus.CounterVec // labels: verdict={GO,MARGINAL,NO-GO,ERROR}
	DecisionErrors   prometheus.Counter
	DecisionDuration prometheus.Histogram

	// Upstream data source metrics.
	FetchDuration *prometheus.HistogramVec // labels: source={weather,space_weather,conjunction}
	FetchErrors   *prometheus.CounterVec   // labels: source

	// Optional Kafka decision publisher.
	DecisionsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PublisherEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launch_clearance",
			Name:      "decisions_total",
			Help:      "Completed clearance decisions by verdict.",
		}, []string{"verdict"}),
		DecisionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "launch_clearance",
			Name:      "decision_errors_total",
			Help:      "Decisions aborted because an upstream fetch failed.",
		}),
		DecisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "launch_clearance",
			Name:      "decision_duration_seconds",
			Help:      "End-to-end duration of a clearance decision including fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "launch_clearance",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream data source request duration by source.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launch_clearance",
			Name:      "fetch_errors_total",
			Help:      "Upstream data source failures by source.",
		}, []string{"source"}),
		DecisionsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "launch_clearance",
			Name:      "decisions_published_total",
			Help:      "Decisions published to the Kafka decision topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "launch_clearance",
			Name:      "publish_errors_total",
			Help:      "Failed publishes to the Kafka decision topic.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "launch_clearance",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka decision publisher is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Decisions,
		m.DecisionErrors,
		m.DecisionDuration,
		m.FetchDuration,
		m.FetchErrors,
		m.DecisionsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Decisions:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "launch_clearance", Name: "decisions_total"}, []string{"verdict"}),
		DecisionErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "launch_clearance", Name: "decision_errors_total"}),
		DecisionDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "launch_clearance", Name: "decision_duration_seconds"}),
		FetchDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "launch_clearance", Name: "fetch_duration_seconds"}, []string{"source"}),
		FetchErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "launch_clearance", Name: "fetch_errors_total"}, []string{"source"}),
		DecisionsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "launch_clearance", Name: "decisions_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "launch_clearance", Name: "publish_errors_total"}),
		PublisherEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "launch_clearance", Name: "publisher_enabled"}),
	}
}
