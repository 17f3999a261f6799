package history

import (
	"context"
	"fmt"
)

// Location is a postal code resolved to coordinates and a display name.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f)", l.Name, l.Latitude, l.Longitude)
}

// DailyTemp is a single day's maximum temperature as returned by the archive.
// Date is an ISO 8601 calendar date (YYYY-MM-DD).
type DailyTemp struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperatureC"`
}

// Resolver maps a postal code to a Location (e.g. Zippopotam, Google).
type Resolver interface {
	Resolve(ctx context.Context, postalCode string) (Location, error)
}

// Archive fetches the daily maximum temperature series for an inclusive
// date range at a location. Entries are returned in chronological order.
type Archive interface {
	FetchDailyMax(ctx context.Context, loc Location, start, end string) ([]DailyTemp, error)
}
