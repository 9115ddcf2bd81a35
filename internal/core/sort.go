package core

import "sort"

type (
	SortField     string
	SortDirection string

	// SortState is the active table sort: which column and which way.
	SortState struct {
		Field     SortField
		Direction SortDirection
	}
)

const (
	SortByMonth       SortField = "month"
	SortByConsumption SortField = "consumption"
	SortByPrice       SortField = "price"
	SortByCost        SortField = "cost"
	SortByPaid        SortField = "paid"
	SortBySaldo       SortField = "saldo"

	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ValidSortField reports whether f names a sortable column.
func ValidSortField(f SortField) bool {
	switch f {
	case SortByMonth, SortByConsumption, SortByPrice, SortByCost, SortByPaid, SortBySaldo:
		return true
	}
	return false
}

// DefaultDirection is the direction used when a column is first selected.
// Month sorts newest-first by default; every other column ascending.
func DefaultDirection(f SortField) SortDirection {
	if f == SortByMonth {
		return SortDesc
	}
	return SortAsc
}

// NextSort computes the sort state after clicking a column header: clicking
// the active column flips the direction, clicking a new column resets to
// that column's default direction.
func NextSort(current SortState, clicked SortField) SortState {
	if current.Field == clicked {
		dir := SortAsc
		if current.Direction == SortAsc {
			dir = SortDesc
		}
		return SortState{Field: clicked, Direction: dir}
	}
	return SortState{Field: clicked, Direction: DefaultDirection(clicked)}
}

// SortEntries returns a sorted copy of entries. The sort is stable, so
// equal values keep their relative order.
func SortEntries(entries []MonthlyEntry, field SortField, direction SortDirection) []MonthlyEntry {
	out := append([]MonthlyEntry(nil), entries...)

	key := func(e MonthlyEntry) float64 {
		switch field {
		case SortByMonth:
			return float64(e.Month)
		case SortByConsumption:
			return e.Consumption
		case SortByPrice:
			return e.Price
		case SortByCost:
			return e.Cost()
		case SortByPaid:
			return e.Paid
		case SortBySaldo:
			return e.Saldo()
		default:
			return float64(e.Month)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if direction == SortDesc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})

	return out
}
