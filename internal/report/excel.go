package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"stromtracker/internal/core"
)

const overviewSheet = "overview"

// ReportFileName is the file the worker writes and the HTTP endpoint serves.
const ReportFileName = "yearly.xlsx"

// BuildYearlyReport renders the record collection as an XLSX workbook:
// an overview sheet with one row per year, plus a timeline sheet per year.
func BuildYearlyReport(records []core.Record) ([]byte, error) {
	rollups := core.BuildYearlyRollup(records)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", overviewSheet)

	_ = f.SetCellValue(overviewSheet, "A1", "Year")
	_ = f.SetCellValue(overviewSheet, "B1", "Consumption (kWh)")
	_ = f.SetCellValue(overviewSheet, "C1", "Avg Price (EUR/kWh)")
	_ = f.SetCellValue(overviewSheet, "D1", "Cost (EUR)")
	_ = f.SetCellValue(overviewSheet, "E1", "Paid (EUR)")
	_ = f.SetCellValue(overviewSheet, "F1", "Balance Forward (EUR)")
	_ = f.SetCellValue(overviewSheet, "G1", "Balance (EUR)")

	for i, r := range rollups {
		row := i + 2
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), r.Year)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", row), r.TotalConsumption)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("C%d", row), r.AveragePrice)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("D%d", row), r.TotalCost)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("E%d", row), r.TotalPaid)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("F%d", row), r.BalanceForward)
		_ = f.SetCellValue(overviewSheet, fmt.Sprintf("G%d", row), r.Balance)
	}

	for _, r := range rollups {
		if err := addTimelineSheet(f, records, r.Year); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addTimelineSheet(f *excelize.File, records []core.Record, year int) error {
	sheet := strconv.Itoa(year)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("add sheet %s: %w", sheet, err)
	}

	tl := core.BuildYearlyTimeline(records, year)

	_ = f.SetCellValue(sheet, "A1", "Month")
	_ = f.SetCellValue(sheet, "B1", "Price (EUR/kWh)")
	_ = f.SetCellValue(sheet, "C1", "Consumption (kWh)")
	_ = f.SetCellValue(sheet, "D1", "Cost (EUR)")
	_ = f.SetCellValue(sheet, "E1", "Paid (EUR)")
	_ = f.SetCellValue(sheet, "F1", "Balance (EUR)")

	for _, slot := range tl.Months {
		row := slot.Month + 1
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), slot.Month)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), slot.Price)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), slot.Consumption)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), slot.Cost)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), slot.Paid)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), slot.Balance)
	}

	summaryRow := core.MonthsPerYear + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), tl.Summary.Consumption)
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), tl.Summary.Cost)
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), tl.Summary.Paid)
	_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), tl.Summary.Balance)

	return nil
}

// WriteYearlyReport builds the workbook and writes it atomically into dir.
func WriteYearlyReport(dir string, records []core.Record) (string, error) {
	data, err := BuildYearlyReport(records)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	path := filepath.Join(dir, ReportFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replace report: %w", err)
	}

	return path, nil
}
