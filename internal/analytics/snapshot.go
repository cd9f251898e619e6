package analytics

import (
	"time"

	"aplus-academy/internal/models"
)

const (
	trendMonths = 6
	topGroupsN  = 5
)

type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type ExpensePoint struct {
	Month   string  `json:"month"`
	Expense float64 `json:"expense"`
}

type ProfitPoint struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

type StatusCount struct {
	Status models.PaymentStatus `json:"status"`
	Value  int                  `json:"value"`
}

type TopGroupSet struct {
	ByStudents   []RankedGroup `json:"byStudents"`
	ByRevenue    []RankedGroup `json:"byRevenue"`
	ByAttendance []RankedGroup `json:"byAttendance"`
}

// Snapshot is the composite value rendered by the admin dashboard.
type Snapshot struct {
	TeacherCount        int            `json:"teacherCount"`
	StudentCount        int            `json:"studentCount"`
	GroupCount          int            `json:"groupCount"`
	MonthlyRevenue      float64        `json:"monthlyRevenue"`
	MonthlyExpenses     float64        `json:"monthlyExpenses"`
	NetProfit           float64        `json:"netProfit"`
	ProfitMargin        float64        `json:"profitMargin"`
	PaidStudents        int            `json:"paidStudents"`
	UnpaidStudents      int            `json:"unpaidStudents"`
	RevenueSeries       []RevenuePoint `json:"revenueSeries"`
	ExpenseSeries       []ExpensePoint `json:"expenseSeries"`
	ProfitSeries        []ProfitPoint  `json:"profitSeries"`
	StudentStatusSeries []StatusCount  `json:"studentStatusSeries"`
	StudentsPerGroup    []NamedValue   `json:"studentsPerGroup"`
	TeachersPerGroup    []TeacherValue `json:"teachersPerGroup"`
	CapacityUsage       []NamedValue   `json:"capacityUsage"`
	TopGroups           TopGroupSet    `json:"topGroups"`
}

// SnapshotInput holds everything the snapshot is derived from. Any field may
// be empty when its read failed.
type SnapshotInput struct {
	TeacherCount int
	StudentCount int
	GroupCount   int
	Students     []models.StudentProfile
	Teachers     []models.TeacherProfile
	Groups       []models.GroupProfile
	Revenue      []models.RevenueRecord
	Expenses     []models.ExpenseRecord
}

func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// LastMonths returns n month keys in ascending order ending at now's month.
func LastMonths(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, MonthKey(first.AddDate(0, -i, 0)))
	}
	return months
}

// ProfitMargin is net/revenue as a percentage, and 0 when there is no revenue.
func ProfitMargin(netProfit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return netProfit / revenue * 100
}

type MonthlyFigures struct {
	Revenue      float64
	Expenses     float64
	NetProfit    float64
	ProfitMargin float64
}

// Monthly counts every paid student's monthly payment as income for month
// regardless of the payment date, and charges the current active payroll.
func Monthly(month string, in SnapshotInput) MonthlyFigures {
	var revenue float64
	for _, r := range in.Revenue {
		if r.Month == month {
			revenue += r.Amount
		}
	}
	for _, s := range in.Students {
		if s.PaymentStatus == models.PaymentPaid {
			revenue += s.MonthlyPayment
		}
	}

	expenses := ActiveSalaries(in.Teachers)
	for _, e := range in.Expenses {
		if e.Month == month {
			expenses += e.Amount
		}
	}

	net := revenue - expenses
	return MonthlyFigures{
		Revenue:      revenue,
		Expenses:     expenses,
		NetProfit:    net,
		ProfitMargin: ProfitMargin(net, revenue),
	}
}

// TrendSeries builds one point per month key. The salary total is added to
// every month's expense because payroll is not historized.
func TrendSeries(months []string, revenue []models.RevenueRecord, expenses []models.ExpenseRecord, salaries float64) ([]RevenuePoint, []ExpensePoint, []ProfitPoint) {
	revByMonth := make(map[string]float64, len(months))
	for _, r := range revenue {
		revByMonth[r.Month] += r.Amount
	}
	expByMonth := make(map[string]float64, len(months))
	for _, e := range expenses {
		expByMonth[e.Month] += e.Amount
	}

	revSeries := make([]RevenuePoint, 0, len(months))
	expSeries := make([]ExpensePoint, 0, len(months))
	for _, m := range months {
		revSeries = append(revSeries, RevenuePoint{Month: m, Revenue: revByMonth[m]})
		expSeries = append(expSeries, ExpensePoint{Month: m, Expense: expByMonth[m] + salaries})
	}
	return revSeries, expSeries, ProfitSeries(months, revSeries, expSeries)
}

// ProfitSeries matches revenue and expense points by month key, so the two
// inputs may differ in length or order.
func ProfitSeries(months []string, rev []RevenuePoint, exp []ExpensePoint) []ProfitPoint {
	revByMonth := make(map[string]float64, len(rev))
	for _, p := range rev {
		revByMonth[p.Month] = p.Revenue
	}
	expByMonth := make(map[string]float64, len(exp))
	for _, p := range exp {
		expByMonth[p.Month] = p.Expense
	}
	out := make([]ProfitPoint, 0, len(months))
	for _, m := range months {
		out = append(out, ProfitPoint{Month: m, Profit: revByMonth[m] - expByMonth[m]})
	}
	return out
}

// BuildSnapshot derives the dashboard snapshot for the month containing now.
func BuildSnapshot(now time.Time, in SnapshotInput) Snapshot {
	figures := Monthly(MonthKey(now), in)

	paid := 0
	for _, s := range in.Students {
		if s.PaymentStatus == models.PaymentPaid {
			paid++
		}
	}
	unpaid := in.StudentCount - paid
	if unpaid < 0 {
		unpaid = 0
	}

	months := LastMonths(now, trendMonths)
	rev, exp, profit := TrendSeries(months, in.Revenue, in.Expenses, ActiveSalaries(in.Teachers))

	return Snapshot{
		TeacherCount:    in.TeacherCount,
		StudentCount:    in.StudentCount,
		GroupCount:      in.GroupCount,
		MonthlyRevenue:  figures.Revenue,
		MonthlyExpenses: figures.Expenses,
		NetProfit:       figures.NetProfit,
		ProfitMargin:    figures.ProfitMargin,
		PaidStudents:    paid,
		UnpaidStudents:  unpaid,
		RevenueSeries:   rev,
		ExpenseSeries:   exp,
		ProfitSeries:    profit,
		StudentStatusSeries: []StatusCount{
			{Status: models.PaymentPaid, Value: paid},
			{Status: models.PaymentUnpaid, Value: unpaid},
		},
		StudentsPerGroup: StudentsPerGroup(in.Groups),
		TeachersPerGroup: TeachersPerGroup(in.Teachers, in.Groups),
		CapacityUsage:    CapacityUsage(in.Groups),
		TopGroups: TopGroupSet{
			ByStudents:   TopGroups(in.Groups, topGroupsN, ByStudents),
			ByRevenue:    TopGroups(in.Groups, topGroupsN, ByRevenue),
			ByAttendance: TopGroups(in.Groups, topGroupsN, ByAttendance),
		},
	}
}
