package swpc

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func serveFeeds(t *testing.T, kpBody, alertsBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case kpIndexPath:
			_, _ = w.Write([]byte(kpBody))
		case alertsPath:
			_, _ = w.Write([]byte(alertsBody))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetSpaceWeather_QuietConditions(t *testing.T) {
	kp := `[
		{"time_tag":"2026-04-02T13:43:00Z","kp_index":2.0,"estimated_kp":2.0},
		{"time_tag":"2026-04-02T13:44:00Z","kp_index":2.33,"estimated_kp":2.33}
	]`
	alerts := `[
		{"product_id":"K04A","issue_datetime":"2026-04-01 08:00:00.000","message":"ALERT: Geomagnetic K-index of 4\r\n"}
	]`
	srv := serveFeeds(t, kp, alerts)
	defer srv.Close()

	obs, err := testClient(srv.URL).GetSpaceWeather(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2.33, obs.KpIndex, "latest reading wins")
	assert.False(t, obs.HasSolarStorm)
}

func TestGetSpaceWeather_SolarStormAlert(t *testing.T) {
	kp := `[{"time_tag":"2026-04-02T13:44:00Z","kp_index":5.67,"estimated_kp":5.67}]`
	alerts := `[
		{"product_id":"SUMSud","issue_datetime":"2026-04-02 11:30:00.000","message":"SUMMARY: Solar Radiation Storm reaching S2 levels\r\n"}
	]`
	srv := serveFeeds(t, kp, alerts)
	defer srv.Close()

	obs, err := testClient(srv.URL).GetSpaceWeather(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5.67, obs.KpIndex)
	assert.True(t, obs.HasSolarStorm)
}

func TestGetSpaceWeather_RadioBlackoutAlert(t *testing.T) {
	kp := `[{"time_tag":"2026-04-02T13:44:00Z","kp_index":3.0,"estimated_kp":3.0}]`
	alerts := `[
		{"product_id":"ALTXMF","issue_datetime":"2026-04-02 12:00:00.000","message":"ALERT: Radio Blackout in progress, R3 or greater\r\n"}
	]`
	srv := serveFeeds(t, kp, alerts)
	defer srv.Close()

	obs, err := testClient(srv.URL).GetSpaceWeather(context.Background())
	require.NoError(t, err)
	assert.True(t, obs.HasSolarStorm)
}

func TestGetSpaceWeather_EmptyKpFeed(t *testing.T) {
	srv := serveFeeds(t, `[]`, `[]`)
	defer srv.Close()

	_, err := testClient(srv.URL).GetSpaceWeather(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty feed")
}

func TestGetSpaceWeather_FeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetSpaceWeather(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
