package history

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

var twoDays = []DailyTemp{
	{Date: "2020-01-01", Temperature: 10.0},
	{Date: "2020-01-02", Temperature: 20.0},
}

func TestAverage(t *testing.T) {
	avg, err := Average(twoDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(avg-15.0) > 1e-9 {
		t.Fatalf("expected 15.00, got %.2f", avg)
	}
}

func TestAverageEmptySeries(t *testing.T) {
	for _, series := range [][]DailyTemp{nil, {}} {
		if _, err := Average(series); !errors.Is(err, ErrEmptySeries) {
			t.Fatalf("expected ErrEmptySeries, got %v", err)
		}
	}
}

func TestDaysAbove(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      []DailyTemp
	}{
		{"one match", 15.0, []DailyTemp{{Date: "2020-01-02", Temperature: 20.0}}},
		{"strictly greater", 20.0, []DailyTemp{}},
		{"all match in order", -5, twoDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysAbove(twoDays, tt.threshold)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTopDays(t *testing.T) {
	series := []DailyTemp{
		{Date: "2020-07-01", Temperature: 30.0},
		{Date: "2020-07-02", Temperature: 35.5},
		{Date: "2020-07-03", Temperature: 30.0},
		{Date: "2020-07-04", Temperature: 28.1},
	}

	tests := []struct {
		name   string
		series []DailyTemp
		n      int
		want   []DailyTemp
	}{
		{"top one", twoDays, 1, []DailyTemp{{Date: "2020-01-02", Temperature: 20.0}}},
		{"n larger than series", twoDays, 5, []DailyTemp{twoDays[1], twoDays[0]}},
		{"zero", twoDays, 0, []DailyTemp{}},
		{"negative", twoDays, -3, []DailyTemp{}},
		{"ties stay chronological", series, 3, []DailyTemp{series[1], series[0], series[2]}},
		{"empty series", nil, DefaultTopDays, []DailyTemp{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopDays(tt.series, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTopDaysDoesNotReorderInput(t *testing.T) {
	series := []DailyTemp{
		{Date: "2020-01-01", Temperature: 1},
		{Date: "2020-01-02", Temperature: 3},
		{Date: "2020-01-03", Temperature: 2},
	}
	TopDays(series, 2)
	if series[0].Date != "2020-01-01" || series[1].Date != "2020-01-02" || series[2].Date != "2020-01-03" {
		t.Fatalf("input series was reordered: %v", series)
	}
}
