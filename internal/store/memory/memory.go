package memory

import (
	"context"
	"sort"
	"sync"

	"stromtracker/internal/core"
)

type monthKey struct {
	year  int
	month int
}

// Store is an in-memory record backend. It validates on write and keeps
// the same upsert keys as the SQLite backend, so the two are
// interchangeable behind the store ports.
type Store struct {
	mu      sync.Mutex
	monthly map[monthKey]core.MonthlyEntry
	carries map[int]core.BalanceForwardEntry
}

func New() *Store {
	return &Store{
		monthly: make(map[monthKey]core.MonthlyEntry),
		carries: make(map[int]core.BalanceForwardEntry),
	}
}

// UpsertMonthly stores e, replacing any existing entry for the same
// year and month.
func (s *Store) UpsertMonthly(_ context.Context, e core.MonthlyEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monthly[monthKey{e.Year, e.Month}] = e
	return nil
}

// UpsertBalanceForward stores e, replacing any existing carry for the year.
func (s *Store) UpsertBalanceForward(_ context.Context, e core.BalanceForwardEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carries[e.Year] = e
	return nil
}

// ListRecords returns all records ordered by year, balance-forward entries
// first, then monthly entries by month.
func (s *Store) ListRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]core.Record, 0, len(s.monthly)+len(s.carries))
	for _, e := range s.carries {
		records = append(records, e)
	}
	for _, e := range s.monthly {
		records = append(records, e)
	}

	sort.SliceStable(records, func(i, j int) bool {
		yi, yj := records[i].RecordYear(), records[j].RecordYear()
		if yi != yj {
			return yi < yj
		}
		return sortMonth(records[i]) < sortMonth(records[j])
	})

	return records, nil
}

// sortMonth orders carries (0) ahead of monthly entries (1..12) within a year.
func sortMonth(r core.Record) int {
	if e, ok := r.(core.MonthlyEntry); ok {
		return e.Month
	}
	return 0
}
