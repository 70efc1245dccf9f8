// Package swpc implements the space weather source against the public NOAA
// Space Weather Prediction Center JSON feeds.
package swpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/launch-clearance/internal/domain"
)

const (
	kpIndexPath = "/json/planetary_k_index_1m.json"
	alertsPath  = "/json/alerts.json"
)

// Solar storm conditions are read from the alert feed text. SWPC issues
// these phrases in its S-scale and R-scale products.
var stormPhrases = []string{
	"Solar Radiation Storm",
	"Radio Blackout",
}

// Client implements decision.SpaceWeatherSource using SWPC feeds.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an SWPC space weather client. The feeds are public and
// need no credentials.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetSpaceWeather returns the latest planetary Kp reading and whether an
// active alert reports solar storm conditions. Space weather is global, so
// the observation is not site-specific.
func (c *Client) GetSpaceWeather(ctx context.Context) (domain.SpaceWeatherObservation, error) {
	kp, err := c.latestKpIndex(ctx)
	if err != nil {
		return domain.SpaceWeatherObservation{}, err
	}

	storm, err := c.hasSolarStorm(ctx)
	if err != nil {
		return domain.SpaceWeatherObservation{}, err
	}

	return domain.SpaceWeatherObservation{
		KpIndex:       kp,
		HasSolarStorm: storm,
	}, nil
}

func (c *Client) latestKpIndex(ctx context.Context) (float64, error) {
	var readings []kpReading
	if err := c.getJSON(ctx, kpIndexPath, &readings); err != nil {
		return 0, fmt.Errorf("kp index: %w", err)
	}
	if len(readings) == 0 {
		return 0, fmt.Errorf("kp index: empty feed")
	}
	// The feed is chronological; the last entry is the current estimate.
	return readings[len(readings)-1].KpIndex, nil
}

func (c *Client) hasSolarStorm(ctx context.Context) (bool, error) {
	var alerts []alert
	if err := c.getJSON(ctx, alertsPath, &alerts); err != nil {
		return false, fmt.Errorf("alerts: %w", err)
	}
	for _, a := range alerts {
		for _, phrase := range stormPhrases {
			if strings.Contains(a.Message, phrase) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SWPC API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SWPC feed types.

type kpReading struct {
	TimeTag     string  `json:"time_tag"`
	KpIndex     float64 `json:"kp_index"`
	EstimatedKp float64 `json:"estimated_kp"`
}

type alert struct {
	ProductID     string `json:"product_id"`
	IssueDatetime string `json:"issue_datetime"`
	Message       string `json:"message"`
}
