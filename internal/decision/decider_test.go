package decision_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/launch-clearance/internal/decision"
	"github.com/couchcryptid/launch-clearance/internal/domain"
	"github.com/couchcryptid/launch-clearance/internal/observability"
)

// --- mocks ---

type stubRegistry struct {
	site domain.LaunchSite
}

func (s *stubRegistry) Lookup(code string) (domain.LaunchSite, bool) {
	if code == s.site.Code {
		return s.site, true
	}
	return domain.LaunchSite{}, false
}

type mockWeather struct {
	obs   domain.WeatherObservation
	err   error
	calls atomic.Int64
	block func(ctx context.Context) error
}

func (m *mockWeather) GetWeather(ctx context.Context, _, _ float64, _ time.Time) (domain.WeatherObservation, error) {
	m.calls.Add(1)
	if m.block != nil {
		if err := m.block(ctx); err != nil {
			return domain.WeatherObservation{}, err
		}
	}
	return m.obs, m.err
}

type mockSpaceWeather struct {
	obs   domain.SpaceWeatherObservation
	err   error
	calls atomic.Int64
	block func(ctx context.Context) error
}

func (m *mockSpaceWeather) GetSpaceWeather(ctx context.Context) (domain.SpaceWeatherObservation, error) {
	m.calls.Add(1)
	if m.block != nil {
		if err := m.block(ctx); err != nil {
			return domain.SpaceWeatherObservation{}, err
		}
	}
	return m.obs, m.err
}

type mockConjunction struct {
	obs   domain.ConjunctionAssessment
	err   error
	calls atomic.Int64
	block func(ctx context.Context) error
}

func (m *mockConjunction) GetConjunctionRisk(ctx context.Context, _, _ float64, _ time.Time) (domain.ConjunctionAssessment, error) {
	m.calls.Add(1)
	if m.block != nil {
		if err := m.block(ctx); err != nil {
			return domain.ConjunctionAssessment{}, err
		}
	}
	return m.obs, m.err
}

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.Decision
	err       error
}

func (m *mockPublisher) PublishDecision(_ context.Context, d domain.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, d)
	return nil
}

// --- fixtures ---

var (
	testSite = domain.LaunchSite{
		Code: "KSC",
		Name: "Kennedy Space Center",
		Lat:  28.573,
		Lon:  -80.649,
		Limits: domain.Limits{
			MaxWindKn:          30,
			MaxPrecipitationMM: 6.4,
			MaxCloudCeilingFt:  1500,
			MaxTempC:           35,
			MinTempC:           -1,
		},
	}

	testLaunchTime = time.Date(2026, 4, 2, 13, 45, 0, 0, time.UTC)

	nominalWeather = domain.WeatherObservation{
		WindSpeedKn:     8,
		PrecipitationMM: 0,
		CloudCeilingFt:  10000,
		TemperatureC:    20,
	}
)

type fixture struct {
	weather      *mockWeather
	spaceWeather *mockSpaceWeather
	conjunction  *mockConjunction
	publisher    *mockPublisher
	decider      *decision.Decider
}

func newFixture() *fixture {
	f := &fixture{
		weather:      &mockWeather{obs: nominalWeather},
		spaceWeather: &mockSpaceWeather{obs: domain.SpaceWeatherObservation{KpIndex: 1}},
		conjunction:  &mockConjunction{},
		publisher:    &mockPublisher{},
	}
	f.decider = decision.New(
		&stubRegistry{site: testSite},
		f.weather,
		f.spaceWeather,
		f.conjunction,
		f.publisher,
		slog.Default(),
		observability.NewMetricsForTesting(),
	)
	return f
}

// --- tests ---

func TestDecide_NominalGo(t *testing.T) {
	f := newFixture()

	dec, err := f.decider.Decide(context.Background(), "KSC", testLaunchTime)
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictGo, dec.Verdict)
	assert.Equal(t, 0, dec.RiskScore)
	assert.Equal(t, domain.NominalExplanation, dec.Why)
	assert.Equal(t, []string{domain.NominalCitation}, dec.RuleCitations)

	require.NotNil(t, dec.Data)
	want := domain.DataSnapshot{
		Weather:      nominalWeather,
		SpaceWeather: domain.SpaceWeatherObservation{KpIndex: 1},
		Conjunction:  domain.ConjunctionAssessment{},
	}
	if diff := cmp.Diff(want, *dec.Data); diff != "" {
		t.Errorf("data snapshot mismatch (-want +got):\n%s", diff)
	}

	assert.EqualValues(t, 1, f.weather.calls.Load())
	assert.EqualValues(t, 1, f.spaceWeather.calls.Load())
	assert.EqualValues(t, 1, f.conjunction.calls.Load())
	assert.Len(t, f.publisher.published, 1)
}

func TestDecide_WindViolationMarginal(t *testing.T) {
	f := newFixture()
	f.weather.obs = domain.WeatherObservation{
		WindSpeedKn:     35,
		PrecipitationMM: 0,
		CloudCeilingFt:  10000,
		TemperatureC:    20,
	}

	dec, err := f.decider.Decide(context.Background(), "KSC", testLaunchTime)
	require.NoError(t, err)

	assert.Equal(t, 40, dec.RiskScore)
	assert.Equal(t, domain.VerdictMarginal, dec.Verdict)
}

func TestDecide_UnknownSite(t *testing.T) {
	f := newFixture()

	dec, err := f.decider.Decide(context.Background(), "XYZ", testLaunchTime)
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictError, dec.Verdict)
	assert.Equal(t, 100, dec.RiskScore)
	assert.Equal(t, "Unknown launch site: XYZ", dec.Why)
	require.NotNil(t, dec.RuleCitations)
	assert.Empty(t, dec.RuleCitations)
	assert.Nil(t, dec.Data)

	// Unknown sites must short-circuit before any fetch.
	assert.Zero(t, f.weather.calls.Load())
	assert.Zero(t, f.spaceWeather.calls.Load())
	assert.Zero(t, f.conjunction.calls.Load())
}

func TestDecide_FetchFailureAbortsDecision(t *testing.T) {
	f := newFixture()
	f.spaceWeather.err = errors.New("swpc unavailable")

	_, err := f.decider.Decide(context.Background(), "KSC", testLaunchTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch space weather")
	assert.Contains(t, err.Error(), "swpc unavailable")

	// No partial decision is published.
	assert.Empty(t, f.publisher.published)
}

func TestDecide_FetchesRunConcurrently(t *testing.T) {
	f := newFixture()

	// Every source blocks until all three have started. Sequential fetching
	// would deadlock here and trip the context timeout.
	var started sync.WaitGroup
	started.Add(3)
	release := make(chan struct{})
	go func() {
		started.Wait()
		close(release)
	}()

	barrier := func(ctx context.Context) error {
		started.Done()
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.weather.block = barrier
	f.spaceWeather.block = barrier
	f.conjunction.block = barrier

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dec, err := f.decider.Decide(ctx, "KSC", testLaunchTime)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictGo, dec.Verdict)
}

func TestDecide_CancellationPropagates(t *testing.T) {
	f := newFixture()
	f.weather.block = func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := f.decider.Decide(ctx, "KSC", testLaunchTime)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecide_PublishFailureDoesNotFailDecision(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	dec, err := f.decider.Decide(context.Background(), "KSC", testLaunchTime)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictGo, dec.Verdict)
}

func TestDecide_NilPublisher(t *testing.T) {
	f := newFixture()
	d := decision.New(
		&stubRegistry{site: testSite},
		f.weather,
		f.spaceWeather,
		f.conjunction,
		nil,
		slog.Default(),
		observability.NewMetricsForTesting(),
	)

	dec, err := d.Decide(context.Background(), "KSC", testLaunchTime)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictGo, dec.Verdict)
}

func TestCheckReadiness(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.decider.CheckReadiness(context.Background()))
}
