package core

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildYearlyTimelineEmptyYear(t *testing.T) {
	tl := BuildYearlyTimeline(nil, 2025)
	if len(tl.Months) != MonthsPerYear {
		t.Fatalf("expected %d slots, got %d", MonthsPerYear, len(tl.Months))
	}
	for i, s := range tl.Months {
		if s.Month != i+1 {
			t.Fatalf("slot %d has month %d", i, s.Month)
		}
		if s.Price != 0 || s.Consumption != 0 || s.Cost != 0 || s.Paid != 0 || s.Balance != 0 {
			t.Fatalf("slot %d not zero: %+v", i, s)
		}
	}
	if tl.Summary != (YearSummary{}) {
		t.Fatalf("expected zero summary, got %+v", tl.Summary)
	}
}

func TestBuildYearlyTimelineRunningBalance(t *testing.T) {
	records := []Record{
		BalanceForwardEntry{Year: 2025, Amount: 100},
		MonthlyEntry{Year: 2025, Month: 1, Price: 1, Consumption: 50, Paid: 50},
		MonthlyEntry{Year: 2025, Month: 2, Price: 1, Consumption: 80, Paid: 30},
	}

	tl := BuildYearlyTimeline(records, 2025)

	want := []float64{100, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	for i, s := range tl.Months {
		if !almostEqual(s.Balance, want[i]) {
			t.Fatalf("month %d balance = %v, want %v", s.Month, s.Balance, want[i])
		}
	}
	if !almostEqual(tl.Summary.BalanceForward, 100) {
		t.Fatalf("balance forward = %v", tl.Summary.BalanceForward)
	}
	if !almostEqual(tl.Summary.Balance, 50) {
		t.Fatalf("final balance = %v", tl.Summary.Balance)
	}
	if !almostEqual(tl.Summary.Cost, 130) || !almostEqual(tl.Summary.Paid, 80) {
		t.Fatalf("summary totals = %+v", tl.Summary)
	}
	if !almostEqual(tl.Summary.Consumption, 130) {
		t.Fatalf("summary consumption = %v", tl.Summary.Consumption)
	}
}

func TestBuildYearlyTimelineSparseMonth(t *testing.T) {
	records := []Record{
		BalanceForwardEntry{Year: 2024, Amount: 20},
		MonthlyEntry{Year: 2024, Month: 6, Price: 0.25, Consumption: 100, Paid: 5},
	}

	tl := BuildYearlyTimeline(records, 2024)

	// Months 1-5 stay flat at the starting balance.
	for _, s := range tl.Months[:5] {
		if !almostEqual(s.Balance, 20) {
			t.Fatalf("month %d balance = %v, want 20", s.Month, s.Balance)
		}
	}
	// Month 6 drops by cost-paid = 25-5.
	if !almostEqual(tl.Months[5].Balance, 0) {
		t.Fatalf("month 6 balance = %v, want 0", tl.Months[5].Balance)
	}
	for _, s := range tl.Months[6:] {
		if !almostEqual(s.Balance, 0) {
			t.Fatalf("month %d balance = %v, want 0", s.Month, s.Balance)
		}
	}
}

func TestBuildYearlyTimelineIgnoresOtherYears(t *testing.T) {
	records := []Record{
		MonthlyEntry{Year: 2023, Month: 3, Price: 0.5, Consumption: 10, Paid: 10},
		BalanceForwardEntry{Year: 2023, Amount: 999},
	}
	tl := BuildYearlyTimeline(records, 2024)
	if tl.Summary != (YearSummary{}) {
		t.Fatalf("expected zero summary, got %+v", tl.Summary)
	}
}

func TestBuildYearlyTimelineUnorderedInput(t *testing.T) {
	// Storage order must not matter: the recurrence runs month 1 -> 12.
	records := []Record{
		MonthlyEntry{Year: 2025, Month: 2, Price: 1, Consumption: 80, Paid: 30},
		BalanceForwardEntry{Year: 2025, Amount: 100},
		MonthlyEntry{Year: 2025, Month: 1, Price: 1, Consumption: 50, Paid: 50},
	}
	tl := BuildYearlyTimeline(records, 2025)
	if !almostEqual(tl.Months[0].Balance, 100) || !almostEqual(tl.Months[1].Balance, 50) {
		t.Fatalf("balances = %v, %v", tl.Months[0].Balance, tl.Months[1].Balance)
	}
}
