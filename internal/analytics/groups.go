package analytics

import (
	"math"
	"sort"

	"aplus-academy/internal/models"
)

// GroupTotals are the denormalized figures stored on a group row.
type GroupTotals struct {
	CurrentStudents int
	MonthlyRevenue  float64
}

// GroupMetrics counts every student assigned to groupID and sums the monthly
// payment of the paid ones.
func GroupMetrics(groupID string, students []models.StudentProfile) GroupTotals {
	var totals GroupTotals
	for _, s := range students {
		if s.GroupID != groupID {
			continue
		}
		totals.CurrentStudents++
		if s.PaymentStatus == models.PaymentPaid {
			totals.MonthlyRevenue += s.MonthlyPayment
		}
	}
	return totals
}

// GroupMetricsByID computes GroupMetrics for every group referenced by a
// student in one pass. Groups without students are absent from the map.
func GroupMetricsByID(students []models.StudentProfile) map[string]GroupTotals {
	out := make(map[string]GroupTotals)
	for _, s := range students {
		if s.GroupID == "" {
			continue
		}
		t := out[s.GroupID]
		t.CurrentStudents++
		if s.PaymentStatus == models.PaymentPaid {
			t.MonthlyRevenue += s.MonthlyPayment
		}
		out[s.GroupID] = t
	}
	return out
}

// CapacityPercent is the rounded enrollment percentage, clamped to [0, 100].
func CapacityPercent(current, max int) int {
	if max <= 0 {
		return 0
	}
	p := int(math.Round(float64(current) / float64(max) * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type TeacherValue struct {
	Teacher string `json:"teacher"`
	Value   int    `json:"value"`
}

type RankedGroup struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func StudentsPerGroup(groups []models.GroupProfile) []NamedValue {
	out := make([]NamedValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, NamedValue{Name: g.Name, Value: float64(g.CurrentStudents)})
	}
	return out
}

func CapacityUsage(groups []models.GroupProfile) []NamedValue {
	out := make([]NamedValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, NamedValue{Name: g.Name, Value: float64(CapacityPercent(g.CurrentStudents, g.MaxStudents))})
	}
	return out
}

// TeachersPerGroup reports, for every teacher, how many groups reference them.
func TeachersPerGroup(teachers []models.TeacherProfile, groups []models.GroupProfile) []TeacherValue {
	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.TeacherID]++
	}
	out := make([]TeacherValue, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, TeacherValue{Teacher: t.FullName, Value: counts[t.ID]})
	}
	return out
}

// TopGroups ranks groups descending by metric and keeps the first n. Equal
// values keep their input order.
func TopGroups(groups []models.GroupProfile, n int, metric func(models.GroupProfile) float64) []RankedGroup {
	ranked := make([]RankedGroup, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, RankedGroup{ID: g.ID, Name: g.Name, Value: metric(g)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func ByStudents(g models.GroupProfile) float64   { return float64(g.CurrentStudents) }
func ByRevenue(g models.GroupProfile) float64    { return g.MonthlyRevenue }
func ByAttendance(g models.GroupProfile) float64 { return g.AttendanceRate }
