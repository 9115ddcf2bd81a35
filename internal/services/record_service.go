package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stromtracker/internal/amqp"
	"stromtracker/internal/core"
	"stromtracker/internal/store"
)

// RecordPublisher is the slice of the AMQP client the service needs.
type RecordPublisher interface {
	PublishRecordSaved(ctx context.Context, kind string, year, month int) error
	Close() error
}

// RecordService orchestrates record writes: persist first, then notify
// the report worker. Publishing is best effort; a broker outage never
// fails a write.
type RecordService struct {
	store     store.Backend
	publisher RecordPublisher
}

func NewRecordService(backend store.Backend, publisher RecordPublisher) *RecordService {
	return &RecordService{
		store:     backend,
		publisher: publisher,
	}
}

// SaveMonthly upserts a monthly entry and publishes a sync message.
func (s *RecordService) SaveMonthly(ctx context.Context, e core.MonthlyEntry) error {
	if err := s.store.UpsertMonthly(ctx, e); err != nil {
		return fmt.Errorf("save monthly entry: %w", err)
	}

	if err := s.publishSaved(ctx, amqp.KindMonthly, e.Year, e.Month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record sync message",
			"kind", amqp.KindMonthly,
			"year", e.Year,
			"month", e.Month,
			"error", err)
		// Entry is saved locally; the worker's periodic rebuild catches up.
	}

	return nil
}

// SaveBalanceForward upserts a balance-forward entry and publishes a
// sync message.
func (s *RecordService) SaveBalanceForward(ctx context.Context, e core.BalanceForwardEntry) error {
	if err := s.store.UpsertBalanceForward(ctx, e); err != nil {
		return fmt.Errorf("save balance forward: %w", err)
	}

	if err := s.publishSaved(ctx, amqp.KindBalanceForward, e.Year, 0); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record sync message",
			"kind", amqp.KindBalanceForward,
			"year", e.Year,
			"error", err)
	}

	return nil
}

// ListRecords returns the full record collection.
func (s *RecordService) ListRecords(ctx context.Context) ([]core.Record, error) {
	return s.store.ListRecords(ctx)
}

func (s *RecordService) publishSaved(ctx context.Context, kind string, year, month int) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishRecordSaved(ctx, kind, year, month)
}

// Close closes the storage backend and the publisher.
func (s *RecordService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
