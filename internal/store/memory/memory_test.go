package memory

import (
	"context"
	"errors"
	"testing"

	"stromtracker/internal/core"
)

func TestUpsertMonthlyReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := core.MonthlyEntry{Year: 2025, Month: 3, Price: 0.30, Consumption: 100, Paid: 25}
	if err := s.UpsertMonthly(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := first
	second.Consumption = 120
	if err := s.UpsertMonthly(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got, ok := records[0].(core.MonthlyEntry)
	if !ok {
		t.Fatalf("unexpected record type %T", records[0])
	}
	if got.Consumption != 120 {
		t.Fatalf("consumption = %v, want 120", got.Consumption)
	}
}

func TestUpsertBalanceForwardReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.UpsertBalanceForward(ctx, core.BalanceForwardEntry{Year: 2025, Amount: 50}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertBalanceForward(ctx, core.BalanceForwardEntry{Year: 2025, Amount: -10}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got, ok := records[0].(core.BalanceForwardEntry)
	if !ok {
		t.Fatalf("unexpected record type %T", records[0])
	}
	if got.Amount != -10 {
		t.Fatalf("amount = %v, want -10", got.Amount)
	}
}

func TestUpsertValidates(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.UpsertMonthly(ctx, core.MonthlyEntry{Year: 2025, Month: 13})
	if !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}

	err = s.UpsertBalanceForward(ctx, core.BalanceForwardEntry{Year: 0, Amount: 5})
	if !errors.Is(err, core.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}

	records, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("invalid writes must not be stored, got %d records", len(records))
	}
}

func TestListRecordsOrdered(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.UpsertMonthly(ctx, core.MonthlyEntry{Year: 2025, Month: 2, Price: 0.3, Consumption: 1, Paid: 1})
	_ = s.UpsertMonthly(ctx, core.MonthlyEntry{Year: 2024, Month: 7, Price: 0.3, Consumption: 1, Paid: 1})
	_ = s.UpsertBalanceForward(ctx, core.BalanceForwardEntry{Year: 2025, Amount: 9})
	_ = s.UpsertMonthly(ctx, core.MonthlyEntry{Year: 2025, Month: 1, Price: 0.3, Consumption: 1, Paid: 1})

	records, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].RecordYear() != 2024 {
		t.Fatalf("first record year = %d", records[0].RecordYear())
	}
	if _, ok := records[1].(core.BalanceForwardEntry); !ok {
		t.Fatalf("expected 2025 carry second, got %T", records[1])
	}
	m2, ok2 := records[2].(core.MonthlyEntry)
	m3, ok3 := records[3].(core.MonthlyEntry)
	if !ok2 || !ok3 || m2.Month != 1 || m3.Month != 2 {
		t.Fatalf("unexpected tail order: %T %T", records[2], records[3])
	}
}
