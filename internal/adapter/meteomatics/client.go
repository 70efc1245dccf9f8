// Package meteomatics implements the weather source against the
// Meteomatics route-style REST API.
package meteomatics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/launch-clearance/internal/domain"
)

// Parameters requested per observation, in the units the decision engine
// expects: knots, millimetres, feet AGL, degrees Celsius.
const (
	paramWindKn    = "wind_speed_10m:kn"
	paramPrecipMM  = "precip_1h:mm"
	paramCeilingFt = "ceiling_height_agl:ft"
	paramTempC     = "t_2m:C"
)

var requestParams = fmt.Sprintf("%s,%s,%s,%s", paramWindKn, paramPrecipMM, paramCeilingFt, paramTempC)

// Client implements decision.WeatherSource using the Meteomatics API.
type Client struct {
	username   string
	password   string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Meteomatics weather client.
func NewClient(baseURL, username, password string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetWeather fetches the surface observation for a pad coordinate at the
// given time.
func (c *Client) GetWeather(ctx context.Context, lat, lon float64, t time.Time) (domain.WeatherObservation, error) {
	// Meteomatics routes are /{time}/{parameters}/{lat},{lon}/{format}.
	u := fmt.Sprintf("%s/%s/%s/%.4f,%.4f/json",
		c.baseURL, t.UTC().Format(time.RFC3339), requestParams, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherObservation{}, fmt.Errorf("meteomatics API error: status %d: %s", resp.StatusCode, body)
	}

	var mr response
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("decode response: %w", err)
	}

	values := make(map[string]float64, len(mr.Data))
	for _, series := range mr.Data {
		if len(series.Coordinates) == 0 || len(series.Coordinates[0].Dates) == 0 {
			continue
		}
		values[series.Parameter] = series.Coordinates[0].Dates[0].Value
	}

	var obs domain.WeatherObservation
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{paramWindKn, &obs.WindSpeedKn},
		{paramPrecipMM, &obs.PrecipitationMM},
		{paramCeilingFt, &obs.CloudCeilingFt},
		{paramTempC, &obs.TemperatureC},
	} {
		v, ok := values[p.name]
		if !ok {
			return domain.WeatherObservation{}, fmt.Errorf("meteomatics response missing %s", p.name)
		}
		*p.dst = v
	}

	return obs, nil
}

// Meteomatics API response types.

type response struct {
	Status string   `json:"status"`
	Data   []series `json:"data"`
}

type series struct {
	Parameter   string       `json:"parameter"`
	Coordinates []coordinate `json:"coordinates"`
}

type coordinate struct {
	Lat   float64      `json:"lat"`
	Lon   float64      `json:"lon"`
	Dates []datedValue `json:"dates"`
}

type datedValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
