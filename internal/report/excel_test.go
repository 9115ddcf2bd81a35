package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"stromtracker/internal/core"
)

func sampleRecords() []core.Record {
	return []core.Record{
		core.BalanceForwardEntry{Year: 2025, Amount: 100},
		core.MonthlyEntry{Year: 2025, Month: 1, Price: 1, Consumption: 50, Paid: 50},
		core.MonthlyEntry{Year: 2025, Month: 2, Price: 1, Consumption: 80, Paid: 30},
		core.MonthlyEntry{Year: 2024, Month: 12, Price: 0.25, Consumption: 40, Paid: 10},
	}
}

func TestBuildYearlyReport(t *testing.T) {
	data, err := BuildYearlyReport(sampleRecords())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"overview": false, "2024": false, "2025": false}
	for _, s := range sheets {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing sheet %q (got %v)", name, sheets)
		}
	}

	// Overview rows are ascending by year: 2024 first.
	year, err := f.GetCellValue("overview", "A2")
	if err != nil || year != "2024" {
		t.Errorf("overview A2 = %q, err %v, want 2024", year, err)
	}
	year, err = f.GetCellValue("overview", "A3")
	if err != nil || year != "2025" {
		t.Errorf("overview A3 = %q, err %v, want 2025", year, err)
	}

	// 2025 balance = 100 + 80 - 130.
	balance, err := f.GetCellValue("overview", "G3")
	if err != nil || balance != "50" {
		t.Errorf("overview G3 = %q, err %v, want 50", balance, err)
	}

	// Timeline sheet: month 2 running balance.
	cell, err := f.GetCellValue("2025", "F3")
	if err != nil || cell != "50" {
		t.Errorf("2025 F3 = %q, err %v, want 50", cell, err)
	}

	// Sparse months keep the running balance flat.
	cell, err = f.GetCellValue("2025", "F13")
	if err != nil || cell != "50" {
		t.Errorf("2025 F13 = %q, err %v, want 50", cell, err)
	}
}

func TestBuildYearlyReportEmpty(t *testing.T) {
	data, err := BuildYearlyReport(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "overview" {
		t.Fatalf("expected only the overview sheet, got %v", sheets)
	}
}

func TestWriteYearlyReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteYearlyReport(dir, sampleRecords())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != ReportFileName {
		t.Errorf("path = %q, want base %q", path, ReportFileName)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("report file is empty")
	}

	// A second write replaces the file in place.
	if _, err := WriteYearlyReport(dir, sampleRecords()); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
}
