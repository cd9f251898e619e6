package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type revenueRequest struct {
	Source string  `json:"source" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Month  string  `json:"month" validate:"omitempty,datetime=2006-01"`
	Note   string  `json:"note"`
}

type expenseRequest struct {
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Month       string  `json:"month" validate:"omitempty,datetime=2006-01"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"omitempty,oneof=fixed variable"`
}

func (s *Server) registerFinance(g *echo.Group) {
	g.GET("/overview", s.financialOverview)
	g.GET("/breakdown", s.financeBreakdown)
	g.GET("/ledger", s.salaryLedger)
	g.GET("/export", s.exportFinance)

	g.GET("/revenue", s.listRevenue)
	g.POST("/revenue", s.addRevenue)
	g.DELETE("/revenue/:id", s.deleteRevenue)

	g.GET("/expenses", s.listExpenses)
	g.POST("/expenses", s.addExpense)
	g.DELETE("/expenses/:id", s.deleteExpense)
}

// financialOverview accepts ?range=7d|30d|90d|12m and an optional
// ?payoutRate between 0 and 1.
func (s *Server) financialOverview(c echo.Context) error {
	r := analytics.ParseTimeRange(c.QueryParam("range"))
	rate := s.svc.PayoutRate()
	if err := echo.QueryParamsBinder(c).Float64("payoutRate", &rate).BindError(); err != nil {
		return newValidationError(errValidation, FieldError{Field: "payoutRate", Error: "must be a number"})
	}
	if !(rate >= 0 && rate <= 1) {
		return newValidationError(errValidation, FieldError{Field: "payoutRate", Error: "must be between 0 and 1"})
	}
	return c.JSON(http.StatusOK, s.svc.FinancialOverview(c.Request().Context(), r, rate))
}

func (s *Server) financeBreakdown(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.FinanceBreakdown(c.Request().Context()))
}

func (s *Server) salaryLedger(c echo.Context) error {
	ledger, err := s.svc.SalaryLedger(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ledger)
}

func (s *Server) exportFinance(c echo.Context) error {
	var buf bytes.Buffer
	if err := s.svc.ExportFinance(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("failed to export finance: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="finance.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) listRevenue(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.ListRevenue(c.Request().Context()))
}

func (s *Server) addRevenue(c echo.Context) error {
	var req revenueRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rec, err := s.svc.AddRevenue(c.Request().Context(), models.RevenueRecord{
		Source: req.Source,
		Amount: req.Amount,
		Month:  req.Month,
		Note:   req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) deleteRevenue(c echo.Context) error {
	if err := s.svc.DeleteRevenue(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listExpenses(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.ListExpenses(c.Request().Context()))
}

func (s *Server) addExpense(c echo.Context) error {
	var req expenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rec, err := s.svc.AddExpense(c.Request().Context(), models.ExpenseRecord{
		Category:    req.Category,
		Amount:      req.Amount,
		Month:       req.Month,
		Description: req.Description,
		Type:        models.ExpenseType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) deleteExpense(c echo.Context) error {
	if err := s.svc.DeleteExpense(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
