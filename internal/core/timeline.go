package core

type (
	// MonthSlot is one row of a yearly timeline. Months without a stored
	// entry keep zero values but still participate in the running balance.
	MonthSlot struct {
		Month       int
		Price       float64
		Consumption float64
		Cost        float64
		Paid        float64
		Balance     float64
	}

	// YearSummary aggregates a timeline. Balance is the final running
	// balance, BalanceForward the amount the year started with.
	YearSummary struct {
		Consumption    float64
		Cost           float64
		Paid           float64
		Balance        float64
		BalanceForward float64
	}

	YearlyTimeline struct {
		Year    int
		Months  []MonthSlot
		Summary YearSummary
	}
)

// BuildYearlyTimeline derives the month-by-month view of a single year from
// the full record collection. It always produces 12 slots in month order;
// missing months contribute neither cost nor payment but do not skip the
// balance recurrence: balance[i] = balance[i-1] - cost[i] + paid[i], seeded
// with the year's balance-forward amount (0 when absent).
func BuildYearlyTimeline(records []Record, year int) YearlyTimeline {
	slots := make([]MonthSlot, MonthsPerYear)
	for i := range slots {
		slots[i].Month = i + 1
	}

	var start float64
	for _, r := range records {
		switch e := r.(type) {
		case MonthlyEntry:
			if e.Year != year || e.Month < 1 || e.Month > MonthsPerYear {
				continue
			}
			s := &slots[e.Month-1]
			s.Price = e.Price
			s.Consumption = e.Consumption
			s.Cost = e.Cost()
			s.Paid = e.Paid
		case BalanceForwardEntry:
			if e.Year == year {
				start = e.Amount
			}
		}
	}

	balance := start
	summary := YearSummary{BalanceForward: start}
	for i := range slots {
		s := &slots[i]
		balance = balance - s.Cost + s.Paid
		s.Balance = balance
		summary.Consumption += s.Consumption
		summary.Cost += s.Cost
		summary.Paid += s.Paid
	}
	summary.Balance = balance

	return YearlyTimeline{Year: year, Months: slots, Summary: summary}
}
