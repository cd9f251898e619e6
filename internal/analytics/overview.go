package analytics

import (
	"sort"
	"time"

	"aplus-academy/internal/models"
)

const (
	topCoursesN      = 5
	teacherSummaryN  = 6
	aheadThreshold   = 1.2
	delayedThreshold = 0.6
)

// PerformanceStatus compares a teacher's revenue with the average share.
type PerformanceStatus string

const (
	StatusAhead   PerformanceStatus = "ahead"
	StatusOnTime  PerformanceStatus = "ontime"
	StatusDelayed PerformanceStatus = "delayed"
)

type CourseFinancial struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	TeacherID        string  `json:"teacherId,omitempty"`
	TeacherName      string  `json:"teacherName,omitempty"`
	TeacherSpecialty string  `json:"teacherSpecialty,omitempty"`
	Revenue          float64 `json:"revenue"`
	Enrollment       int     `json:"enrollment"`
}

type TeacherFinancial struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Specialty    string            `json:"specialty,omitempty"`
	TotalRevenue float64           `json:"totalRevenue"`
	Payout       float64           `json:"payout"`
	Courses      int               `json:"courses"`
	Status       PerformanceStatus `json:"status"`
}

// FinancialBase is the range-dependent part of the overview; the payout rate
// is applied afterwards so it can change without re-reading.
type FinancialBase struct {
	Courses          []CourseFinancial
	Trend            []TrendPoint
	TotalRevenue     float64
	TotalEnrollments int
}

type FinancialOverview struct {
	TotalRevenue       float64            `json:"totalRevenue"`
	AvgTicket          float64            `json:"avgTicket"`
	TotalEnrollments   int                `json:"totalEnrollments"`
	OutstandingPayouts float64            `json:"outstandingPayouts"`
	PipelineGrowth     float64            `json:"pipelineGrowth"`
	RevenueTrend       []TrendPoint       `json:"revenueTrend"`
	TopCourses         []CourseFinancial  `json:"topCourses"`
	TeacherSummaries   []TeacherFinancial `json:"teacherSummaries"`
}

// EmptyOverview is returned when the inputs could not be read.
func EmptyOverview() FinancialOverview {
	return FinancialOverview{
		RevenueTrend:     []TrendPoint{},
		TopCourses:       []CourseFinancial{},
		TeacherSummaries: []TeacherFinancial{},
	}
}

// ClassifyTeacher is rank-relative: with no teachers or no revenue everyone
// is on time.
func ClassifyTeacher(revenue, totalRevenue float64, teacherCount int) PerformanceStatus {
	if teacherCount <= 0 || totalRevenue == 0 {
		return StatusOnTime
	}
	avg := totalRevenue / float64(teacherCount)
	switch {
	case revenue >= avg*aheadThreshold:
		return StatusAhead
	case revenue <= avg*delayedThreshold:
		return StatusDelayed
	default:
		return StatusOnTime
	}
}

// BuildFinancialBase counts applications per course (apps must already be
// limited to the window) and prices them with the course's parsed price.
func BuildFinancialBase(now time.Time, r TimeRange, courses []models.Course, teachers []models.TeacherProfile, apps []models.Application) FinancialBase {
	prices := make(map[string]float64, len(courses))
	for _, c := range courses {
		prices[c.ID] = ParseCurrencyValue(c.Price.String)
	}
	byTeacher := make(map[string]models.TeacherProfile, len(teachers))
	for _, t := range teachers {
		byTeacher[t.ID] = t
	}

	enrollments := make(map[string]int)
	for _, a := range apps {
		if a.CourseID.Valid && a.CourseID.String != "" {
			enrollments[a.CourseID.String]++
		}
	}

	base := FinancialBase{Courses: make([]CourseFinancial, 0, len(courses))}
	for _, c := range courses {
		cf := CourseFinancial{
			ID:         c.ID,
			Name:       c.NameUz,
			Category:   c.Category.String,
			TeacherID:  c.TeacherID.String,
			Enrollment: enrollments[c.ID],
		}
		cf.Revenue = float64(cf.Enrollment) * prices[c.ID]
		if t, ok := byTeacher[cf.TeacherID]; ok && cf.TeacherID != "" {
			cf.TeacherName = t.FullName
			cf.TeacherSpecialty = t.Subject
		}
		base.Courses = append(base.Courses, cf)
		base.TotalRevenue += cf.Revenue
		base.TotalEnrollments += cf.Enrollment
	}
	base.Trend = TrendPoints(now, r, apps, prices)
	return base
}

// RankCourses orders courses by revenue, keeping input order for ties.
func RankCourses(courses []CourseFinancial, n int) []CourseFinancial {
	ranked := make([]CourseFinancial, len(courses))
	copy(ranked, courses)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RankTeachers sums course revenue per teacher and orders the result by
// revenue. Teachers appear in order of their first course on ties.
func RankTeachers(courses []CourseFinancial, totalRevenue, payoutRate float64) []TeacherFinancial {
	var order []string
	agg := make(map[string]*TeacherFinancial)
	for _, c := range courses {
		if c.TeacherID == "" {
			continue
		}
		entry, ok := agg[c.TeacherID]
		if !ok {
			entry = &TeacherFinancial{ID: c.TeacherID}
			agg[c.TeacherID] = entry
			order = append(order, c.TeacherID)
		}
		if c.TeacherName != "" {
			entry.Name = c.TeacherName
		}
		if c.TeacherSpecialty != "" {
			entry.Specialty = c.TeacherSpecialty
		}
		entry.TotalRevenue += c.Revenue
		entry.Courses++
	}

	out := make([]TeacherFinancial, 0, len(order))
	for _, id := range order {
		t := *agg[id]
		t.Payout = t.TotalRevenue * payoutRate
		t.Status = ClassifyTeacher(t.TotalRevenue, totalRevenue, len(order))
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}

// PipelineGrowth compares the revenue of the second half of the trend with
// the first half, in percent. It is 0 when the first half has no revenue.
func PipelineGrowth(trend []TrendPoint) float64 {
	mid := len(trend) / 2
	var first, second float64
	for i, p := range trend {
		if i < mid {
			first += p.Revenue
		} else {
			second += p.Revenue
		}
	}
	if first == 0 {
		return 0
	}
	return (second - first) / first * 100
}

func BuildFinancialOverview(base FinancialBase, payoutRate float64) FinancialOverview {
	overview := EmptyOverview()
	overview.TotalRevenue = base.TotalRevenue
	overview.TotalEnrollments = base.TotalEnrollments
	if base.TotalEnrollments > 0 {
		overview.AvgTicket = base.TotalRevenue / float64(base.TotalEnrollments)
	}

	teachers := RankTeachers(base.Courses, base.TotalRevenue, payoutRate)
	if len(teachers) > teacherSummaryN {
		teachers = teachers[:teacherSummaryN]
	}
	for _, t := range teachers {
		if t.Status == StatusDelayed {
			overview.OutstandingPayouts += t.Payout
		}
	}
	overview.TeacherSummaries = teachers
	overview.TopCourses = RankCourses(base.Courses, topCoursesN)
	overview.PipelineGrowth = PipelineGrowth(base.Trend)
	if base.Trend != nil {
		overview.RevenueTrend = base.Trend
	}
	return overview
}
