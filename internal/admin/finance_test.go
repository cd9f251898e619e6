package admin_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aplus-academy/internal/models"
)

func TestFinanceBreakdown_MissingExpenseTable(t *testing.T) {
	svc, db := newService(t)
	seedTeacher(t, db, models.TeacherProfile{ID: "t1", FullName: "A", MonthlySalary: 3000000, Status: models.TeacherActive})
	db.Fail("ListExpenses", models.ErrTableNotFound)

	expenses := svc.ListExpenses(context.Background())
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)

	b := svc.FinanceBreakdown(context.Background())
	assert.Equal(t, 3000000.0, b.TeacherSalaries)
	assert.Zero(t, b.OperatingExpenses)
	assert.Equal(t, 3000000.0, b.TotalExpenses)
	assert.Empty(t, b.AdditionalExpenses)
}

func TestFinanceBreakdown(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	seedTeacher(t, db, models.TeacherProfile{ID: "t1", FullName: "A", MonthlySalary: 1000000, Status: models.TeacherActive})
	seedTeacher(t, db, models.TeacherProfile{ID: "t2", FullName: "B", MonthlySalary: 900000, Status: models.TeacherInactive})

	_, err := svc.AddExpense(ctx, models.ExpenseRecord{Category: "Rent", Amount: 800000, Month: "2026-09", Type: models.ExpenseFixed})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, models.ExpenseRecord{Category: "Markers", Amount: 45000})
	require.NoError(t, err)

	b := svc.FinanceBreakdown(ctx)
	assert.Equal(t, 1000000.0, b.TeacherSalaries)
	assert.Equal(t, 845000.0, b.OperatingExpenses)
	assert.Equal(t, 1845000.0, b.TotalExpenses)
	require.Len(t, b.AdditionalExpenses, 2)
	assert.Equal(t, "2026-10", b.AdditionalExpenses[1].Month)
	assert.Equal(t, models.ExpenseVariable, b.AdditionalExpenses[1].Type)
}

func TestRevenueLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	r, err := svc.AddRevenue(ctx, models.RevenueRecord{Source: "Summer camp", Amount: 1500000})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "2026-10", r.Month)

	require.Len(t, svc.ListRevenue(ctx), 1)
	require.NoError(t, svc.DeleteRevenue(ctx, r.ID))
	assert.Empty(t, svc.ListRevenue(ctx))
	assert.ErrorIs(t, svc.DeleteRevenue(ctx, r.ID), models.ErrNotFound)
}

func TestListRevenue_ReadFailure(t *testing.T) {
	svc, db := newService(t)
	db.Fail("ListRevenue", errBoom)

	revenue := svc.ListRevenue(context.Background())
	assert.NotNil(t, revenue)
	assert.Empty(t, revenue)
}

func TestExportFinance(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	seedTeacher(t, db, models.TeacherProfile{ID: "t1", FullName: "A", MonthlySalary: 1000000, Status: models.TeacherActive})
	_, err := svc.AddRevenue(ctx, models.RevenueRecord{Source: "Camp", Amount: 100})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportFinance(ctx, &buf))
	assert.NotZero(t, buf.Len())
}
