package services

import (
	"context"
	"errors"
	"testing"

	"stromtracker/internal/core"
	"stromtracker/internal/store/memory"
)

type fakePublisher struct {
	published  []string
	publishErr error
	closed     bool
}

func (f *fakePublisher) PublishRecordSaved(_ context.Context, kind string, year, month int) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, kind)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestSaveMonthlyPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewRecordService(memory.New(), pub)
	ctx := context.Background()

	err := svc.SaveMonthly(ctx, core.MonthlyEntry{Year: 2025, Month: 1, Price: 0.3, Consumption: 100, Paid: 30})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0] != "monthly" {
		t.Fatalf("published = %v, want [monthly]", pub.published)
	}

	records, err := svc.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestSaveBalanceForwardPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewRecordService(memory.New(), pub)

	err := svc.SaveBalanceForward(context.Background(), core.BalanceForwardEntry{Year: 2025, Amount: 42})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != "balance_forward" {
		t.Fatalf("published = %v, want [balance_forward]", pub.published)
	}
}

func TestSaveSucceedsWhenPublishFails(t *testing.T) {
	pub := &fakePublisher{publishErr: errors.New("broker down")}
	svc := NewRecordService(memory.New(), pub)
	ctx := context.Background()

	err := svc.SaveMonthly(ctx, core.MonthlyEntry{Year: 2025, Month: 1, Price: 0.3, Consumption: 100, Paid: 30})
	if err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}

	records, err := svc.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the entry to be saved, got %d records", len(records))
	}
}

func TestSaveSucceedsWithoutPublisher(t *testing.T) {
	svc := NewRecordService(memory.New(), nil)

	err := svc.SaveBalanceForward(context.Background(), core.BalanceForwardEntry{Year: 2025, Amount: 1})
	if err != nil {
		t.Fatalf("save without publisher: %v", err)
	}
}

func TestSaveRejectsInvalidEntry(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewRecordService(memory.New(), pub)

	err := svc.SaveMonthly(context.Background(), core.MonthlyEntry{Year: 2025, Month: 13})
	if !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatal("invalid entry must not be published")
	}
}

func TestCloseClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewRecordService(memory.New(), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pub.closed {
		t.Fatal("publisher not closed")
	}
}
