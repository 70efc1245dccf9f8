// Package spacetrack implements the conjunction source against the
// Space-Track.org conjunction data message (CDM) API.
package spacetrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/launch-clearance/internal/domain"
)

const (
	loginPath = "/ajaxauth/login"

	// Screening window around the requested launch time.
	windowHalfWidth = 6 * time.Hour

	// COLA high-risk thresholds: collision probability at or above 1e-4,
	// or predicted miss distance under 1 km.
	highRiskPc     = 1e-4
	highRiskMissKm = 1.0
)

// Client implements decision.ConjunctionSource using Space-Track CDMs.
type Client struct {
	username   string
	password   string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Space-Track conjunction client. The session cookie
// from login is held in the client's jar for the follow-up query.
func NewClient(baseURL, username, password string, timeout time.Duration, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetConjunctionRisk counts public CDMs with a time of closest approach
// inside the screening window around launchTime and flags high risk when
// any of them crosses the COLA thresholds. CDM screening is orbit-wide, so
// the pad coordinates do not narrow the query.
func (c *Client) GetConjunctionRisk(ctx context.Context, _, _ float64, launchTime time.Time) (domain.ConjunctionAssessment, error) {
	if err := c.login(ctx); err != nil {
		return domain.ConjunctionAssessment{}, err
	}

	cdms, err := c.queryWindow(ctx, launchTime.Add(-windowHalfWidth), launchTime.Add(windowHalfWidth))
	if err != nil {
		return domain.ConjunctionAssessment{}, err
	}

	assessment := domain.ConjunctionAssessment{CloseApproaches: len(cdms)}
	for _, cdm := range cdms {
		if cdm.highRisk() {
			assessment.HasHighRisk = true
			break
		}
	}
	return assessment, nil
}

func (c *Client) login(ctx context.Context) error {
	form := url.Values{
		"identity": {c.username},
		"password": {c.password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("space-track login: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("space-track login: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) queryWindow(ctx context.Context, start, end time.Time) ([]cdm, error) {
	const stamp = "2006-01-02T15:04:05"
	u := fmt.Sprintf("%s/basicspacedata/query/class/cdm_public/TCA/%s--%s/orderby/TCA/format/json",
		c.baseURL, start.UTC().Format(stamp), end.UTC().Format(stamp))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cdm query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("space-track API error: status %d: %s", resp.StatusCode, body)
	}

	var cdms []cdm
	if err := json.NewDecoder(resp.Body).Decode(&cdms); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return cdms, nil
}

// Space-Track cdm_public response record. All fields arrive as strings.

type cdm struct {
	CDMID    string `json:"CDM_ID"`
	TCA      string `json:"TCA"`
	MinRngKm string `json:"MIN_RNG"`
	Pc       string `json:"PC"`
	Sat1Name string `json:"SAT_1_NAME"`
	Sat2Name string `json:"SAT_2_NAME"`
}

// highRisk reports whether this CDM crosses either COLA threshold.
// Unparseable values count as a close approach but not as high risk.
func (m cdm) highRisk() bool {
	if pc, err := strconv.ParseFloat(m.Pc, 64); err == nil && pc >= highRiskPc {
		return true
	}
	if rng, err := strconv.ParseFloat(m.MinRngKm, 64); err == nil && rng < highRiskMissKm {
		return true
	}
	return false
}
