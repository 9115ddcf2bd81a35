package store

import (
	"context"

	"stromtracker/internal/core"
)

// Ports for outbound storage adapters.
type (
	// RecordLister returns the full record collection. Aggregation always
	// starts from the complete set, so there is no filtered variant.
	RecordLister interface {
		ListRecords(ctx context.Context) ([]core.Record, error)
	}

	// RecordWriter persists records with last-write-wins semantics: a
	// monthly entry is keyed by (year, month), a balance-forward entry by
	// year alone.
	RecordWriter interface {
		UpsertMonthly(ctx context.Context, e core.MonthlyEntry) error
		UpsertBalanceForward(ctx context.Context, e core.BalanceForwardEntry) error
	}

	// Backend is the full storage surface the HTTP layer works against.
	Backend interface {
		RecordLister
		RecordWriter
	}
)
