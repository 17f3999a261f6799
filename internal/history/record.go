package history

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Default date bounds used when a Record is created without WithRange.
const (
	DefaultStart = "1950-08-13"
	DefaultEnd   = "2023-08-25"
)

// Record holds one postal code's daily maximum temperatures for an inclusive
// date range. The bounds and the series only ever change together: a failed
// SetStart/SetEnd leaves both exactly as they were.
//
// A Record is not safe for concurrent use.
type Record struct {
	id         uuid.UUID
	postalCode string
	loc        Location

	start  string
	end    string
	series []DailyTemp

	archive Archive
	logger  *slog.Logger
}

// Option customizes NewRecord.
type Option func(*Record)

// WithRange overrides the default date bounds.
func WithRange(start, end string) Option {
	return func(r *Record) {
		r.start = start
		r.end = end
	}
}

// WithLogger sets the logger used for fetch and rollback events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Record) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRecord resolves postalCode once and loads the series for the configured
// range. On any failure it returns a *DatasetError and no record.
func NewRecord(ctx context.Context, postalCode string, resolver Resolver, archive Archive, opts ...Option) (*Record, error) {
	r := &Record{
		id:         uuid.New(),
		postalCode: postalCode,
		start:      DefaultStart,
		end:        DefaultEnd,
		archive:    archive,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("record", r.id.String(), "postalCode", postalCode)

	loc, err := resolver.Resolve(ctx, postalCode)
	if err != nil {
		return nil, &DatasetError{PostalCode: postalCode, Reason: "could not resolve location", Err: err}
	}
	r.loc = loc

	series, err := r.fetch(ctx, r.start, r.end)
	if err != nil {
		return nil, &DatasetError{PostalCode: postalCode, Reason: "could not load data", Err: err}
	}
	r.series = series

	r.logger.Info("dataset loaded", "location", loc.Name, "start", r.start, "end", r.end, "days", len(series))
	return r, nil
}

// ID identifies the record in log output.
func (r *Record) ID() uuid.UUID { return r.id }

func (r *Record) PostalCode() string { return r.postalCode }

func (r *Record) Start() string { return r.start }

func (r *Record) End() string { return r.end }

func (r *Record) Location() Location { return r.loc }

// Len returns the number of days in the committed series.
func (r *Record) Len() int { return len(r.series) }

// Series returns a copy of the committed series.
func (r *Record) Series() []DailyTemp {
	out := make([]DailyTemp, len(r.series))
	copy(out, r.series)
	return out
}

// SetStart re-fetches the series with a new start date. The new bound and
// series are committed only if the fetch succeeds; otherwise a *RangeError is
// returned and the record is unchanged.
func (r *Record) SetStart(ctx context.Context, date string) error {
	series, err := r.fetch(ctx, date, r.end)
	if err != nil {
		r.logger.Warn("start date change rolled back", "requested", date, "kept", r.start, "err", err)
		return &RangeError{Field: "start", Value: date, Err: err}
	}
	r.start = date
	r.series = series
	return nil
}

// SetEnd is the end-date counterpart of SetStart.
func (r *Record) SetEnd(ctx context.Context, date string) error {
	series, err := r.fetch(ctx, r.start, date)
	if err != nil {
		r.logger.Warn("end date change rolled back", "requested", date, "kept", r.end, "err", err)
		return &RangeError{Field: "end", Value: date, Err: err}
	}
	r.end = date
	r.series = series
	return nil
}

// Average returns the mean daily maximum over the committed series.
func (r *Record) Average() (float64, error) {
	return Average(r.series)
}

// DaysAbove returns the committed days strictly above threshold.
func (r *Record) DaysAbove(threshold float64) []DailyTemp {
	return DaysAbove(r.series, threshold)
}

// TopDays returns the n warmest committed days.
func (r *Record) TopDays(n int) []DailyTemp {
	return TopDays(r.series, n)
}

func (r *Record) fetch(ctx context.Context, start, end string) ([]DailyTemp, error) {
	r.logger.Debug("fetching series", "start", start, "end", end)
	series, err := r.archive.FetchDailyMax(ctx, r.loc, start, end)
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []DailyTemp{}
	}
	return series, nil
}
