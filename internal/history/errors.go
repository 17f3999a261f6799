package history

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries is returned when averaging a record that holds no days.
	ErrEmptySeries = errors.New("temperature series is empty")

	// ErrUnknownPostalCode is wrapped by resolvers when the geocoding source
	// has no entry (or only NaN coordinates) for a postal code.
	ErrUnknownPostalCode = errors.New("unknown postal code")
)

// ResolutionError reports that a postal code could not be geocoded.
type ResolutionError struct {
	PostalCode string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve postal code %q: %v", e.PostalCode, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// DatasetError reports that a Record could not be constructed. No record
// exists when this error is returned.
type DatasetError struct {
	PostalCode string
	Reason     string
	Err        error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %s: %v", e.PostalCode, e.Reason, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// RangeError reports a failed SetStart/SetEnd. The record keeps its previous
// bounds and series, so callers may keep using it.
type RangeError struct {
	Field string // "start" or "end"
	Value string
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("could not change %s date to %q: %v", e.Field, e.Value, e.Err)
}

func (e *RangeError) Unwrap() error { return e.Err }
