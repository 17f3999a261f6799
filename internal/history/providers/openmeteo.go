package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/historical-temps/internal/history"
	"github.com/sony/gobreaker"
)

const (
	// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
	DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"
	// DefaultArchiveTimezone aligns day boundaries for the daily aggregates.
	DefaultArchiveTimezone = "America/Los_Angeles"

	dailyMaxMetric = "temperature_2m_max"
)

var (
	errMissingDaily   = errors.New("response has no daily object")
	errLengthMismatch = errors.New("daily time and temperature arrays differ in length")
)

// OpenMeteoArchive implements history.Archive against the Open-Meteo archive API.
type OpenMeteoArchive struct {
	name     string
	baseURL  string
	timezone string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	logger   *slog.Logger
}

// NewOpenMeteoArchive creates an archive client. Empty baseURL or timezone
// fall back to the defaults.
func NewOpenMeteoArchive(client *http.Client, baseURL, timezone string, backoff BackoffConfig, logger *slog.Logger) *OpenMeteoArchive {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	if timezone == "" {
		timezone = DefaultArchiveTimezone
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenMeteoArchive{
		name:     "openmeteo-archive",
		baseURL:  baseURL,
		timezone: timezone,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newBreaker("openmeteo-archive"),
		logger:  logger,
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// FetchDailyMax returns the daily maximum temperatures for [start, end].
func (p *OpenMeteoArchive) FetchDailyMax(ctx context.Context, loc history.Location, start, end string) ([]history.DailyTemp, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
		values.Set("start_date", start)
		values.Set("end_date", end)
		values.Set("daily", dailyMaxMetric)
		values.Set("timezone", p.timezone)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if reason := openMeteoReason(se.Body); reason != "" {
				return nil, fmt.Errorf("%s: archive rejected request: %s", p.name, reason)
			}
		}
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Daily *struct {
			Time    []string   `json:"time"`
			TempMax []*float64 `json:"temperature_2m_max"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", p.name, err)
	}
	if payload.Daily == nil {
		return nil, fmt.Errorf("%s: %w", p.name, errMissingDaily)
	}
	if len(payload.Daily.Time) != len(payload.Daily.TempMax) {
		return nil, fmt.Errorf("%s: %w (%d vs %d)", p.name, errLengthMismatch,
			len(payload.Daily.Time), len(payload.Daily.TempMax))
	}

	series := make([]history.DailyTemp, 0, len(payload.Daily.Time))
	var missing int
	for i, date := range payload.Daily.Time {
		// The archive reports null for days it has no value for yet.
		if payload.Daily.TempMax[i] == nil {
			missing++
			continue
		}
		series = append(series, history.DailyTemp{Date: date, Temperature: *payload.Daily.TempMax[i]})
	}
	if missing > 0 {
		p.logger.Debug("skipped days without a value", "provider", p.name, "missing", missing)
	}

	return series, nil
}

func openMeteoReason(body []byte) string {
	var apiErr struct {
		Error  bool   `json:"error"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || !apiErr.Error {
		return ""
	}
	return apiErr.Reason
}
