package core

import "math"

// Year-over-year trend display thresholds, in percent. Swings below these
// are considered noise and suppressed in the yearly chart footer.
const (
	ConsumptionTrendMinPercent = 5.0
	CostTrendMinPercent        = 10.0
)

// TrendResult is a period-over-period delta of one rollup metric.
type TrendResult struct {
	Percentage float64
	IsUp       bool
}

// Trend compares the last two elements of an ascending-by-year series using
// the given metric accessor. It reports ok=false when fewer than two years
// exist or when either compared value is zero: a trend against an empty or
// zero period would be misleading (or divide by zero), so none is produced.
func Trend(series []YearRollup, value func(YearRollup) float64) (TrendResult, bool) {
	if len(series) < 2 {
		return TrendResult{}, false
	}
	current := value(series[len(series)-1])
	previous := value(series[len(series)-2])
	if current == 0 || previous == 0 {
		return TrendResult{}, false
	}
	diff := current - previous
	return TrendResult{
		Percentage: math.Abs(diff) / previous * 100,
		IsUp:       diff > 0,
	}, true
}

// TrendAbove is Trend with a noise floor: results at or below minPercent
// are suppressed as well.
func TrendAbove(series []YearRollup, value func(YearRollup) float64, minPercent float64) (TrendResult, bool) {
	t, ok := Trend(series, value)
	if !ok || t.Percentage <= minPercent {
		return TrendResult{}, false
	}
	return t, true
}
