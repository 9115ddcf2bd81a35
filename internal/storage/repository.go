package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stromtracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists consumption records in a single table. Monthly
// entries and balance-forward entries share the table, kept disjoint by the
// balance_forward flag; partial unique indexes enforce one monthly entry per
// (year, month) and one carry per year.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// UpsertMonthly writes e under its (year, month) key, replacing any
// existing entry. Last write wins.
func (r *SQLiteRepository) UpsertMonthly(ctx context.Context, e core.MonthlyEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE consumption_records
		SET price = ?, consumption = ?, paid = ?, updated_at = CURRENT_TIMESTAMP
		WHERE year = ? AND month = ? AND balance_forward = 0`,
		e.Price, e.Consumption, e.Paid, e.Year, e.Month)
	if err != nil {
		return fmt.Errorf("update monthly entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO consumption_records (year, month, price, consumption, paid, balance_forward)
			VALUES (?, ?, ?, ?, ?, 0)`,
			e.Year, e.Month, e.Price, e.Consumption, e.Paid)
		if err != nil {
			return fmt.Errorf("insert monthly entry: %w", err)
		}
	}

	slog.InfoContext(ctx, "Monthly entry saved",
		"year", e.Year,
		"month", e.Month,
		"consumption", e.Consumption,
		"updated", affected > 0)

	return nil
}

// UpsertBalanceForward writes e under its year key, replacing any
// existing carry.
func (r *SQLiteRepository) UpsertBalanceForward(ctx context.Context, e core.BalanceForwardEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE consumption_records
		SET amount = ?, updated_at = CURRENT_TIMESTAMP
		WHERE year = ? AND balance_forward = 1`,
		e.Amount, e.Year)
	if err != nil {
		return fmt.Errorf("update balance forward: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO consumption_records (year, month, amount, balance_forward)
			VALUES (?, NULL, ?, 1)`,
			e.Year, e.Amount)
		if err != nil {
			return fmt.Errorf("insert balance forward: %w", err)
		}
	}

	slog.InfoContext(ctx, "Balance forward saved",
		"year", e.Year,
		"amount", e.Amount,
		"updated", affected > 0)

	return nil
}

// ListRecords returns all records ordered by year, carries ahead of
// monthly entries within a year.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT year, month, price, consumption, paid, amount, balance_forward
		FROM consumption_records
		ORDER BY year, balance_forward DESC, month`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			year                     int
			month                    sql.NullInt64
			price, consumption, paid float64
			amount                   float64
			carry                    bool
		)
		if err := rows.Scan(&year, &month, &price, &consumption, &paid, &amount, &carry); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		if carry {
			records = append(records, core.BalanceForwardEntry{Year: year, Amount: amount})
			continue
		}
		records = append(records, core.MonthlyEntry{
			Year:        year,
			Month:       int(month.Int64),
			Price:       price,
			Consumption: consumption,
			Paid:        paid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
