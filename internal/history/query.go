package history

import "sort"

// DefaultTopDays is the number of days TopDays returns when callers have no
// preference.
const DefaultTopDays = 10

// Average returns the arithmetic mean of the temperatures in series.
func Average(series []DailyTemp) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}

	var sum float64
	for _, d := range series {
		sum += d.Temperature
	}
	return sum / float64(len(series)), nil
}

// DaysAbove returns the days strictly warmer than threshold, in their original
// order. The result is never nil.
func DaysAbove(series []DailyTemp, threshold float64) []DailyTemp {
	out := make([]DailyTemp, 0)
	for _, d := range series {
		if d.Temperature > threshold {
			out = append(out, d)
		}
	}
	return out
}

// TopDays returns the n warmest days, warmest first. Ties keep their
// chronological order.
func TopDays(series []DailyTemp, n int) []DailyTemp {
	if n <= 0 {
		return []DailyTemp{}
	}

	sorted := make([]DailyTemp, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Temperature > sorted[j].Temperature
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
