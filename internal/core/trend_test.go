package core

import "testing"

func consumption(r YearRollup) float64 { return r.TotalConsumption }

func TestTrendSuppressedOnShortSeries(t *testing.T) {
	if _, ok := Trend(nil, consumption); ok {
		t.Fatal("expected no trend for empty series")
	}
	series := []YearRollup{{Year: 2025, TotalConsumption: 100}}
	if _, ok := Trend(series, consumption); ok {
		t.Fatal("expected no trend for a single year")
	}
}

func TestTrendSuppressedOnZeroValues(t *testing.T) {
	cases := [][]YearRollup{
		{{Year: 2024, TotalConsumption: 0}, {Year: 2025, TotalConsumption: 100}},
		{{Year: 2024, TotalConsumption: 100}, {Year: 2025, TotalConsumption: 0}},
	}
	for i, series := range cases {
		if _, ok := Trend(series, consumption); ok {
			t.Fatalf("case %d: expected suppressed trend", i)
		}
	}
}

func TestTrendUpAndDown(t *testing.T) {
	up := []YearRollup{
		{Year: 2024, TotalConsumption: 100},
		{Year: 2025, TotalConsumption: 150},
	}
	tr, ok := Trend(up, consumption)
	if !ok || !tr.IsUp || !almostEqual(tr.Percentage, 50) {
		t.Fatalf("up trend = %+v ok=%v", tr, ok)
	}

	down := []YearRollup{
		{Year: 2024, TotalConsumption: 200},
		{Year: 2025, TotalConsumption: 150},
	}
	tr, ok = Trend(down, consumption)
	if !ok || tr.IsUp || !almostEqual(tr.Percentage, 25) {
		t.Fatalf("down trend = %+v ok=%v", tr, ok)
	}
}

func TestTrendUsesLastTwoYears(t *testing.T) {
	series := []YearRollup{
		{Year: 2023, TotalConsumption: 1000},
		{Year: 2024, TotalConsumption: 100},
		{Year: 2025, TotalConsumption: 110},
	}
	tr, ok := Trend(series, consumption)
	if !ok || !tr.IsUp || !almostEqual(tr.Percentage, 10) {
		t.Fatalf("trend = %+v ok=%v", tr, ok)
	}
}

func TestTrendAboveThreshold(t *testing.T) {
	series := []YearRollup{
		{Year: 2024, TotalConsumption: 100},
		{Year: 2025, TotalConsumption: 104},
	}
	if _, ok := TrendAbove(series, consumption, ConsumptionTrendMinPercent); ok {
		t.Fatal("4% swing should be below the 5% floor")
	}

	series[1].TotalConsumption = 110
	tr, ok := TrendAbove(series, consumption, ConsumptionTrendMinPercent)
	if !ok || !almostEqual(tr.Percentage, 10) {
		t.Fatalf("trend = %+v ok=%v", tr, ok)
	}
}
