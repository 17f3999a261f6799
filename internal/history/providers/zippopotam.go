package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/historical-temps/internal/history"
	"github.com/sony/gobreaker"
)

// DefaultZippopotamURL serves the GeoNames postal code dataset.
const DefaultZippopotamURL = "https://api.zippopotam.us"

// ZippopotamResolver implements history.Resolver using api.zippopotam.us.
type ZippopotamResolver struct {
	name    string
	baseURL string
	country string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewZippopotamResolver(client *http.Client, baseURL, country string, backoff BackoffConfig) *ZippopotamResolver {
	if baseURL == "" {
		baseURL = DefaultZippopotamURL
	}
	if country == "" {
		country = "us"
	}

	return &ZippopotamResolver{
		name:    "zippopotam",
		baseURL: strings.TrimRight(baseURL, "/"),
		country: strings.ToLower(country),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newBreaker("zippopotam"),
	}
}

func (p *ZippopotamResolver) Name() string {
	return p.name
}

func (p *ZippopotamResolver) Resolve(ctx context.Context, postalCode string) (history.Location, error) {
	code := strings.TrimSpace(postalCode)
	if code == "" {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: history.ErrUnknownPostalCode}
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s/%s", p.baseURL, url.PathEscape(p.country), url.PathEscape(code))
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			err = history.ErrUnknownPostalCode
		}
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: err}
	}
	defer resp.Body.Close()

	var payload struct {
		Places []struct {
			PlaceName string `json:"place name"`
			StateAbbr string `json:"state abbreviation"`
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"places"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(payload.Places) == 0 {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: history.ErrUnknownPostalCode}
	}

	place := payload.Places[0]
	lat := parseCoordinate(place.Latitude)
	lon := parseCoordinate(place.Longitude)
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: history.ErrUnknownPostalCode}
	}

	name := place.PlaceName
	if place.StateAbbr != "" {
		name = fmt.Sprintf("%s, %s", place.PlaceName, place.StateAbbr)
	}

	return history.Location{Latitude: lat, Longitude: lon, Name: name}, nil
}

// parseCoordinate returns NaN for anything that is not a finite number.
func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
