package admin

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/internal/report"
	"aplus-academy/pkg/logger"
)

// ListRevenue never fails: any read error, including a missing table, yields
// an empty list.
func (s *Service) ListRevenue(ctx context.Context) []models.RevenueRecord {
	rows, err := s.store.ListRevenue(ctx)
	if err != nil {
		s.degraded("list revenue", err)
		return []models.RevenueRecord{}
	}
	out := make([]models.RevenueRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.RevenueFromRow(r))
	}
	return out
}

func (s *Service) AddRevenue(ctx context.Context, r models.RevenueRecord) (models.RevenueRecord, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Month == "" {
		r.Month = analytics.MonthKey(s.now())
	}
	if err := s.store.CreateRevenue(ctx, mapper.RevenueToRow(r)); err != nil {
		s.log.Error("failed to add revenue", zap.Error(err))
		return models.RevenueRecord{}, fmt.Errorf("failed to add revenue: %w", err)
	}
	s.changed(ctx)
	return r, nil
}

func (s *Service) DeleteRevenue(ctx context.Context, id string) error {
	if err := s.store.DeleteRevenue(ctx, id); err != nil {
		s.log.Error("failed to delete revenue", zap.String(logger.FieldID, id), zap.Error(err))
		return fmt.Errorf("failed to delete revenue: %w", err)
	}
	s.changed(ctx)
	return nil
}

// ListExpenses never fails: any read error, including a missing table,
// yields an empty list.
func (s *Service) ListExpenses(ctx context.Context) []models.ExpenseRecord {
	rows, err := s.store.ListExpenses(ctx)
	if err != nil {
		s.degraded("list expenses", err)
		return []models.ExpenseRecord{}
	}
	out := make([]models.ExpenseRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.ExpenseFromRow(r))
	}
	return out
}

func (s *Service) AddExpense(ctx context.Context, e models.ExpenseRecord) (models.ExpenseRecord, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Month == "" {
		e.Month = analytics.MonthKey(s.now())
	}
	if e.Type == "" {
		e.Type = models.ExpenseVariable
	}
	if err := s.store.CreateExpense(ctx, mapper.ExpenseToRow(e)); err != nil {
		s.log.Error("failed to add expense", zap.Error(err))
		return models.ExpenseRecord{}, fmt.Errorf("failed to add expense: %w", err)
	}
	s.changed(ctx)
	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		s.log.Error("failed to delete expense", zap.String(logger.FieldID, id), zap.Error(err))
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.changed(ctx)
	return nil
}

// FinanceBreakdown combines the active payroll with all recorded expenses.
// Unavailable inputs count as zero.
func (s *Service) FinanceBreakdown(ctx context.Context) analytics.FinanceBreakdown {
	teachers, err := s.teachers(ctx)
	if err != nil {
		s.degraded("list teachers", err)
	}
	return analytics.Breakdown(teachers, s.ListExpenses(ctx))
}

// ExportFinance writes the revenue and expense ledgers with their totals as
// an .xlsx workbook.
func (s *Service) ExportFinance(ctx context.Context, w io.Writer) error {
	teachers, err := s.teachers(ctx)
	if err != nil {
		s.degraded("list teachers", err)
	}
	expenses := s.ListExpenses(ctx)
	return report.WriteFinance(w, report.Finance{
		Revenue:   s.ListRevenue(ctx),
		Expenses:  expenses,
		Breakdown: analytics.Breakdown(teachers, expenses),
		Ledger:    analytics.Ledger(teachers),
	})
}
