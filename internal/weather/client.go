// Package weather fetches personal-weather-station history from the
// Weather Underground PWS API, for driving the box model with real
// solar and air-temperature data.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/datawolf04/physlab/internal/analysis"
)

const defaultBaseURL = "https://api.weather.com/v2/pws"

// Observation is one reported interval from a station's daily history.
type Observation struct {
	ObsTimeLocal       string  `json:"obsTimeLocal"`
	SolarRadiationHigh float64 `json:"solarRadiationHigh"`
	HumidityAvg        float64 `json:"humidityAvg"`
	Metric             struct {
		TempHigh float64 `json:"tempHigh"`
		TempLow  float64 `json:"tempLow"`
		TempAvg  float64 `json:"tempAvg"`
	} `json:"metric"`
}

type historyResponse struct {
	Observations []Observation `json:"observations"`
}

type Client struct {
	baseURL    string
	stationID  string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Logger
	maxRetries int
	backoff    time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option          { return func(c *Client) { c.baseURL = u } }
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }
func WithLogger(l *logrus.Logger) Option   { return func(c *Client) { c.log = l } }
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.backoff = backoff
	}
}

func NewClient(stationID, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		stationID:  stationID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logrus.StandardLogger(),
		maxRetries: 3,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyHistory fetches all observations the station reported on the
// given calendar day. Server errors are retried with doubling backoff.
func (c *Client) DailyHistory(ctx context.Context, date time.Time) ([]Observation, error) {
	q := url.Values{}
	q.Set("stationId", c.stationID)
	q.Set("format", "json")
	q.Set("units", "m")
	q.Set("date", date.Format("20060102"))
	q.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/history/daily?" + q.Encode()

	backoff := c.backoff
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"backoff": backoff,
			}).Warn("retrying weather history fetch")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		obs, retryable, err := c.fetch(ctx, endpoint)
		if err == nil {
			return obs, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("weather history fetch failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]Observation, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("server returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("request rejected: %s", resp.Status)
	}

	var parsed historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("decoding history response: %w", err)
	}
	return parsed.Observations, false, nil
}

// DaySummary condenses a day of observations for display and for
// seeding box-model parameters.
type DaySummary struct {
	Temp      analysis.SeriesSummary
	Solar     analysis.SeriesSummary
	Humidity  analysis.SeriesSummary
	Intervals int
}

func Summarize(obs []Observation) DaySummary {
	temps := make([]float64, len(obs))
	solar := make([]float64, len(obs))
	humidity := make([]float64, len(obs))
	for i, o := range obs {
		temps[i] = o.Metric.TempAvg
		solar[i] = o.SolarRadiationHigh
		humidity[i] = o.HumidityAvg
	}
	return DaySummary{
		Temp:      analysis.Summarize(temps),
		Solar:     analysis.Summarize(solar),
		Humidity:  analysis.Summarize(humidity),
		Intervals: len(obs),
	}
}
