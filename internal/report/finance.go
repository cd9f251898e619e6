// Package report renders finance data as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/models"
)

const (
	SheetSummary  = "Summary"
	SheetRevenue  = "Revenue"
	SheetExpenses = "Expenses"
)

type Finance struct {
	Revenue   []models.RevenueRecord
	Expenses  []models.ExpenseRecord
	Breakdown analytics.FinanceBreakdown
	Ledger    analytics.SalaryLedger
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// FinanceWorkbook builds a workbook with a summary sheet followed by the
// revenue and expense ledgers.
func FinanceWorkbook(data Finance) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	summary := [][]any{
		{"Metric", "Amount"},
		{"Teacher salaries", data.Breakdown.TeacherSalaries},
		{"Operating expenses", data.Breakdown.OperatingExpenses},
		{"Total expenses", data.Breakdown.TotalExpenses},
		{"Total revenue", analytics.SumRevenue(data.Revenue)},
		{"Active payroll", data.Ledger.Active},
		{"Inactive payroll", data.Ledger.Inactive},
	}
	for i, values := range summary {
		if err := writeRow(f, SheetSummary, i+1, values...); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if _, err := f.NewSheet(SheetRevenue); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create revenue sheet: %w", err)
	}
	if err := writeRow(f, SheetRevenue, 1, "Month", "Source", "Amount", "Note"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write revenue: %w", err)
	}
	for i, r := range data.Revenue {
		if err := writeRow(f, SheetRevenue, i+2, r.Month, r.Source, r.Amount, r.Note); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write revenue: %w", err)
		}
	}

	if _, err := f.NewSheet(SheetExpenses); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create expense sheet: %w", err)
	}
	if err := writeRow(f, SheetExpenses, 1, "Month", "Category", "Type", "Amount", "Description"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write expenses: %w", err)
	}
	for i, e := range data.Expenses {
		if err := writeRow(f, SheetExpenses, i+2, e.Month, e.Category, string(e.Type), e.Amount, e.Description); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write expenses: %w", err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFinance streams the workbook to w as .xlsx.
func WriteFinance(w io.Writer, data Finance) error {
	f, err := FinanceWorkbook(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
