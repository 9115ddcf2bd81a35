package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stromtracker/internal/amqp"
	"stromtracker/internal/report"
	"stromtracker/internal/store"
)

// ReportWorker regenerates the XLSX yearly report whenever a record
// changes. Messages carry only the changed key; the worker always
// rebuilds from the full collection, so a lost message costs nothing
// beyond waiting for the next rebuild.
type ReportWorker struct {
	store     store.RecordLister
	reportDir string
}

func NewReportWorker(lister store.RecordLister, reportDir string) *ReportWorker {
	return &ReportWorker{
		store:     lister,
		reportDir: reportDir,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP
func (w *ReportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSavedMessage) error {
	slog.InfoContext(ctx, "Processing record sync message",
		"kind", msg.Kind,
		"year", msg.Year,
		"month", msg.Month)

	return w.Rebuild(ctx)
}

// Rebuild reads the full record collection and rewrites the report.
func (w *ReportWorker) Rebuild(ctx context.Context) error {
	records, err := w.store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	path, err := report.WriteYearlyReport(w.reportDir, records)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.InfoContext(ctx, "Report rebuilt",
		"report_path", path,
		"records", len(records))

	return nil
}

// RunPeriodicRebuild rebuilds the report on a fixed interval until ctx is
// cancelled. This is the backup mechanism in case AMQP messages are lost.
func (w *ReportWorker) RunPeriodicRebuild(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic rebuild", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.Rebuild(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic rebuild failed", "error", err)
			}
		}
	}
}
