package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/historical-temps/internal/history"
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

var errNoAPIKey = errors.New("google geocoder api key is not configured")

// GoogleResolver implements history.Resolver with the Google Geocoding API.
// The postal code is forward geocoded to coordinates, then reverse geocoded
// for a city name.
type GoogleResolver struct {
	name    string
	apiKey  string
	country string
	circuit *gobreaker.CircuitBreaker

	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleResolver sets the geocoder package API key; only one key can be in
// use per process.
func NewGoogleResolver(apiKey, country string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	if country == "" {
		country = "us"
	}

	return &GoogleResolver{
		name:    "google",
		apiKey:  apiKey,
		country: strings.ToUpper(country),
		circuit: newBreaker("google-geocoder"),
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (p *GoogleResolver) Name() string {
	return p.name
}

func (p *GoogleResolver) Resolve(ctx context.Context, postalCode string) (history.Location, error) {
	if p.apiKey == "" {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: errNoAPIKey}
	}
	if err := ctx.Err(); err != nil {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: err}
	}

	code := strings.TrimSpace(postalCode)
	if code == "" {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: history.ErrUnknownPostalCode}
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		return p.geocode(geocoder.Address{PostalCode: code, Country: p.country})
	})
	if err != nil {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: fmt.Errorf("%s: %w", p.name, err)}
	}

	pos, ok := result.(geocoder.Location)
	if !ok || math.IsNaN(pos.Latitude) || math.IsNaN(pos.Longitude) || (pos.Latitude == 0 && pos.Longitude == 0) {
		return history.Location{}, &history.ResolutionError{PostalCode: postalCode, Err: history.ErrUnknownPostalCode}
	}

	return history.Location{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Name:      p.placeName(code, pos),
	}, nil
}

// placeName falls back to the postal code itself when reverse geocoding
// yields nothing usable; the coordinates are what the archive needs.
func (p *GoogleResolver) placeName(code string, pos geocoder.Location) string {
	addresses, err := p.reverse(pos)
	if err != nil {
		return code
	}
	for _, a := range addresses {
		switch {
		case a.City != "" && a.State != "":
			return fmt.Sprintf("%s, %s", a.City, a.State)
		case a.City != "":
			return a.City
		}
	}
	return code
}
