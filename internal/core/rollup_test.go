package core

import "testing"

func TestBuildYearlyRollupTotalsAndBalance(t *testing.T) {
	records := []Record{
		MonthlyEntry{Year: 2025, Month: 1, Price: 0.30, Consumption: 200, Paid: 100},
		MonthlyEntry{Year: 2025, Month: 2, Price: 0.32, Consumption: 150, Paid: 40},
		BalanceForwardEntry{Year: 2025, Amount: 12},
	}

	rollups := BuildYearlyRollup(records)
	if len(rollups) != 1 {
		t.Fatalf("expected 1 rollup, got %d", len(rollups))
	}
	r := rollups[0]
	if r.Year != 2025 {
		t.Fatalf("year = %d", r.Year)
	}
	if !almostEqual(r.TotalConsumption, 350) || !almostEqual(r.TotalPaid, 140) {
		t.Fatalf("totals = %+v", r)
	}
	if !almostEqual(r.TotalCost, 0.30*200+0.32*150) {
		t.Fatalf("total cost = %v", r.TotalCost)
	}
	if !almostEqual(r.BalanceForward, 12) {
		t.Fatalf("balance forward = %v", r.BalanceForward)
	}
	if !almostEqual(r.Balance, 12+140-108) {
		t.Fatalf("balance = %v", r.Balance)
	}
}

func TestBuildYearlyRollupMergeOrderIndependent(t *testing.T) {
	monthly := MonthlyEntry{Year: 2024, Month: 5, Price: 0.28, Consumption: 90, Paid: 25}
	carry := BalanceForwardEntry{Year: 2024, Amount: -3.5}

	a := BuildYearlyRollup([]Record{carry, monthly})
	b := BuildYearlyRollup([]Record{monthly, carry})

	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Fatalf("rollups differ: %+v vs %+v", a, b)
	}
}

func TestBuildYearlyRollupCarryOnlyYear(t *testing.T) {
	rollups := BuildYearlyRollup([]Record{BalanceForwardEntry{Year: 2023, Amount: 40}})
	if len(rollups) != 1 {
		t.Fatalf("expected 1 rollup, got %d", len(rollups))
	}
	r := rollups[0]
	if r.TotalConsumption != 0 || r.TotalCost != 0 || r.TotalPaid != 0 || r.AveragePrice != 0 {
		t.Fatalf("expected zero totals, got %+v", r)
	}
	if !almostEqual(r.Balance, 40) {
		t.Fatalf("balance = %v", r.Balance)
	}
}

func TestBuildYearlyRollupAveragePriceSkipsZeroPrice(t *testing.T) {
	records := []Record{
		MonthlyEntry{Year: 2025, Month: 1, Price: 0.30, Consumption: 10, Paid: 1},
		MonthlyEntry{Year: 2025, Month: 2, Price: 0, Consumption: 10, Paid: 1},
		MonthlyEntry{Year: 2025, Month: 3, Price: 0.40, Consumption: 10, Paid: 1},
	}
	rollups := BuildYearlyRollup(records)
	if !almostEqual(rollups[0].AveragePrice, 0.35) {
		t.Fatalf("average price = %v, want 0.35", rollups[0].AveragePrice)
	}
}

func TestBuildYearlyRollupSortedAscending(t *testing.T) {
	records := []Record{
		MonthlyEntry{Year: 2025, Month: 1, Price: 0.3, Consumption: 1, Paid: 1},
		MonthlyEntry{Year: 2023, Month: 1, Price: 0.3, Consumption: 1, Paid: 1},
		MonthlyEntry{Year: 2024, Month: 1, Price: 0.3, Consumption: 1, Paid: 1},
	}
	rollups := BuildYearlyRollup(records)
	if len(rollups) != 3 {
		t.Fatalf("expected 3 rollups, got %d", len(rollups))
	}
	for i, want := range []int{2023, 2024, 2025} {
		if rollups[i].Year != want {
			t.Fatalf("rollup %d year = %d, want %d", i, rollups[i].Year, want)
		}
	}
}

func TestDashboardBalanceUsesPreviousYearCarry(t *testing.T) {
	// The headline figure: carry out of 2024 plus 2025 payments minus
	// 2025 costs.
	records := []Record{
		BalanceForwardEntry{Year: 2024, Amount: 120},
		MonthlyEntry{Year: 2025, Month: 1, Price: 0.30, Consumption: 200, Paid: 100},
		MonthlyEntry{Year: 2025, Month: 2, Price: 0.32, Consumption: 150, Paid: 40},
	}
	got := DashboardBalance(records, 2025)
	if !almostEqual(got, 152) {
		t.Fatalf("dashboard balance = %v, want 152", got)
	}
}

func TestDashboardBalanceNoCarry(t *testing.T) {
	records := []Record{
		MonthlyEntry{Year: 2025, Month: 1, Price: 0.5, Consumption: 100, Paid: 70},
	}
	if got := DashboardBalance(records, 2025); !almostEqual(got, 20) {
		t.Fatalf("dashboard balance = %v, want 20", got)
	}
}
