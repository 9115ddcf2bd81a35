package core

import "sort"

// YearRollup aggregates all monthly entries of one year, merged with the
// year's balance-forward amount. AveragePrice is the mean of the entries'
// price fields, counting only entries with a nonzero price.
type YearRollup struct {
	Year             int
	TotalConsumption float64
	TotalPaid        float64
	TotalCost        float64
	AveragePrice     float64
	BalanceForward   float64
	Balance          float64
}

// BuildYearlyRollup groups the record collection by year and returns one
// rollup per year, ascending. The order matters: trend computation treats
// the last two elements as the two most recent years. A year that only has
// a balance-forward entry still gets a rollup with zero totals.
func BuildYearlyRollup(records []Record) []YearRollup {
	type acc struct {
		rollup      YearRollup
		priceSum    float64
		pricedCount int
	}
	byYear := make(map[int]*acc)

	get := func(year int) *acc {
		a, ok := byYear[year]
		if !ok {
			a = &acc{rollup: YearRollup{Year: year}}
			byYear[year] = a
		}
		return a
	}

	for _, r := range records {
		switch e := r.(type) {
		case MonthlyEntry:
			a := get(e.Year)
			a.rollup.TotalConsumption += e.Consumption
			a.rollup.TotalPaid += e.Paid
			a.rollup.TotalCost += e.Cost()
			if e.Price != 0 {
				a.priceSum += e.Price
				a.pricedCount++
			}
		case BalanceForwardEntry:
			get(e.Year).rollup.BalanceForward = e.Amount
		}
	}

	rollups := make([]YearRollup, 0, len(byYear))
	for _, a := range byYear {
		if a.pricedCount > 0 {
			a.rollup.AveragePrice = a.priceSum / float64(a.pricedCount)
		}
		a.rollup.Balance = a.rollup.BalanceForward + a.rollup.TotalPaid - a.rollup.TotalCost
		rollups = append(rollups, a.rollup)
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].Year < rollups[j].Year })

	return rollups
}

// DashboardBalance is the headline account balance for targetYear: the
// balance carried out of the previous year plus this year's payments minus
// this year's costs. It is computed independently of BuildYearlyTimeline
// and only agrees with the timeline's final balance when the stored
// balance-forward entries are consistent with each other.
func DashboardBalance(records []Record, targetYear int) float64 {
	var carry, paid, cost float64
	for _, r := range records {
		switch e := r.(type) {
		case BalanceForwardEntry:
			if e.Year == targetYear-1 {
				carry = e.Amount
			}
		case MonthlyEntry:
			if e.Year == targetYear {
				paid += e.Paid
				cost += e.Cost()
			}
		}
	}
	return carry + paid - cost
}
