package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/models"
)

func TestWriteFinance(t *testing.T) {
	data := Finance{
		Revenue: []models.RevenueRecord{{Source: "Summer camp", Amount: 1500000, Month: "2026-07"}},
		Expenses: []models.ExpenseRecord{
			{Category: "Rent", Amount: 800000, Month: "2026-10", Type: models.ExpenseFixed},
			{Category: "Markers", Amount: 45000, Month: "2026-10", Type: models.ExpenseVariable},
		},
		Breakdown: analytics.FinanceBreakdown{TeacherSalaries: 3000000, OperatingExpenses: 845000, TotalExpenses: 3845000},
		Ledger:    analytics.SalaryLedger{Active: 3000000, Inactive: 500000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFinance(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRevenue, SheetExpenses}, f.GetSheetList())

	total, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "3845000", total)

	source, err := f.GetCellValue(SheetRevenue, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Summer camp", source)

	rows, err := f.GetRows(SheetExpenses)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2026-10", "Markers", "variable", "45000"}, rows[2])
}
