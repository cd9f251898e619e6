package analytics

import "aplus-academy/internal/models"

type FinanceBreakdown struct {
	TeacherSalaries    float64                `json:"teacherSalaries"`
	OperatingExpenses  float64                `json:"operatingExpenses"`
	TotalExpenses      float64                `json:"totalExpenses"`
	AdditionalExpenses []models.ExpenseRecord `json:"additionalExpenses"`
}

// SalaryLedger splits the payroll by teacher status.
type SalaryLedger struct {
	Active   float64 `json:"active"`
	Inactive float64 `json:"inactive"`
}

// ActiveSalaries is the current monthly payroll of active teachers.
func ActiveSalaries(teachers []models.TeacherProfile) float64 {
	var total float64
	for _, t := range teachers {
		if t.Status == models.TeacherActive {
			total += t.MonthlySalary
		}
	}
	return total
}

func SumExpenses(expenses []models.ExpenseRecord) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func SumRevenue(revenue []models.RevenueRecord) float64 {
	var total float64
	for _, r := range revenue {
		total += r.Amount
	}
	return total
}

// Breakdown is an all-time total: it is not scoped to a month.
func Breakdown(teachers []models.TeacherProfile, expenses []models.ExpenseRecord) FinanceBreakdown {
	salaries := ActiveSalaries(teachers)
	operating := SumExpenses(expenses)
	if expenses == nil {
		expenses = []models.ExpenseRecord{}
	}
	return FinanceBreakdown{
		TeacherSalaries:    salaries,
		OperatingExpenses:  operating,
		TotalExpenses:      salaries + operating,
		AdditionalExpenses: expenses,
	}
}

func Ledger(teachers []models.TeacherProfile) SalaryLedger {
	var l SalaryLedger
	for _, t := range teachers {
		if t.Status == models.TeacherActive {
			l.Active += t.MonthlySalary
		} else {
			l.Inactive += t.MonthlySalary
		}
	}
	return l
}
