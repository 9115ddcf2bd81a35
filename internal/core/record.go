package core

import "errors"

// MonthsPerYear is the number of slots in a yearly timeline.
const MonthsPerYear = 12

type (
	// Record is a single entry of the consumption ledger. The two variants,
	// MonthlyEntry and BalanceForwardEntry, share one collection but never
	// merge: a record is always exactly one of them.
	Record interface {
		RecordYear() int
		isRecord()
	}

	// MonthlyEntry holds one month's metered consumption and payment.
	// Cost is derived, never stored.
	MonthlyEntry struct {
		Year        int
		Month       int     // 1..12
		Price       float64 // EUR per kWh
		Consumption float64 // kWh
		Paid        float64 // EUR
	}

	// BalanceForwardEntry is the account balance carried into a year.
	// The amount may be negative.
	BalanceForwardEntry struct {
		Year   int
		Amount float64 // EUR
	}
)

var (
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrNegativeNumeric = errors.New("negative value")
)

// Cost is the single definition of a month's cost. Every table, dashboard
// and chart figure derives cost through this function.
func Cost(price, consumption float64) float64 {
	return price * consumption
}

func (e MonthlyEntry) RecordYear() int { return e.Year }
func (MonthlyEntry) isRecord()         {}

// Cost returns the entry's derived cost.
func (e MonthlyEntry) Cost() float64 { return Cost(e.Price, e.Consumption) }

// Saldo is the month's payment surplus (negative when underpaid).
func (e MonthlyEntry) Saldo() float64 { return e.Paid - e.Cost() }

func (e MonthlyEntry) Validate() error {
	if e.Year <= 0 {
		return ErrInvalidYear
	}
	if e.Month < 1 || e.Month > MonthsPerYear {
		return ErrInvalidMonth
	}
	if e.Price < 0 || e.Consumption < 0 || e.Paid < 0 {
		return ErrNegativeNumeric
	}
	return nil
}

func (e BalanceForwardEntry) RecordYear() int { return e.Year }
func (BalanceForwardEntry) isRecord()         {}

func (e BalanceForwardEntry) Validate() error {
	if e.Year <= 0 {
		return ErrInvalidYear
	}
	return nil
}
