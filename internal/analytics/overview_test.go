package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aplus-academy/internal/models"
)

func course(id, teacher, price string) models.Course {
	return models.Course{
		ID:          id,
		NameUz:      "Course " + id,
		Price:       sql.NullString{String: price, Valid: price != ""},
		TeacherID:   sql.NullString{String: teacher, Valid: teacher != ""},
		IsPublished: true,
	}
}

func TestClassifyTeacher(t *testing.T) {
	tests := []struct {
		name    string
		revenue float64
		total   float64
		count   int
		want    PerformanceStatus
	}{
		{name: "no teachers", revenue: 100, total: 1000, count: 0, want: StatusOnTime},
		{name: "no revenue", revenue: 0, total: 0, count: 3, want: StatusOnTime},
		{name: "below threshold", revenue: 100, total: 1000, count: 2, want: StatusDelayed},
		{name: "exactly delayed threshold", revenue: 300, total: 1000, count: 2, want: StatusDelayed},
		{name: "above threshold", revenue: 900, total: 1000, count: 2, want: StatusAhead},
		{name: "exactly ahead threshold", revenue: 600, total: 1000, count: 2, want: StatusAhead},
		{name: "average", revenue: 500, total: 1000, count: 2, want: StatusOnTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTeacher(tt.revenue, tt.total, tt.count))
		})
	}
}

func TestFinancialOverview(t *testing.T) {
	teachers := []models.TeacherProfile{
		{ID: "tA", FullName: "Teacher A", Subject: "Math"},
		{ID: "tB", FullName: "Teacher B", Subject: "English"},
	}
	courses := []models.Course{
		course("c1", "tA", "100 so'm"),
		course("c2", "tB", "900"),
		course("c3", "", "abc"),
	}
	apps := []models.Application{
		application("c1", october.Add(-time.Hour)),
		application("c2", october.Add(-2*time.Hour)),
		application("c3", october.Add(-3*time.Hour)),
	}

	base := BuildFinancialBase(october, Range30Days, courses, teachers, apps)
	require.Len(t, base.Courses, 3)
	assert.Equal(t, 1000.0, base.TotalRevenue)
	assert.Equal(t, 3, base.TotalEnrollments)
	assert.Equal(t, "Teacher A", base.Courses[0].TeacherName)
	assert.Zero(t, base.Courses[2].Revenue, "unparseable price counts as zero")

	overview := BuildFinancialOverview(base, 0.35)
	require.Len(t, overview.TeacherSummaries, 2)
	assert.Equal(t, "tB", overview.TeacherSummaries[0].ID)
	assert.Equal(t, StatusAhead, overview.TeacherSummaries[0].Status)
	assert.Equal(t, "tA", overview.TeacherSummaries[1].ID)
	assert.Equal(t, StatusDelayed, overview.TeacherSummaries[1].Status)
	assert.InDelta(t, 35.0, overview.OutstandingPayouts, 1e-9)
	assert.InDelta(t, 1000.0/3, overview.AvgTicket, 1e-9)
	assert.Equal(t, []string{"c2", "c1", "c3"}, []string{overview.TopCourses[0].ID, overview.TopCourses[1].ID, overview.TopCourses[2].ID})
	assert.Len(t, overview.RevenueTrend, 30)
}

func TestRankCoursesStableOnTies(t *testing.T) {
	courses := []CourseFinancial{
		{ID: "a", Revenue: 10},
		{ID: "b", Revenue: 20},
		{ID: "c", Revenue: 10},
		{ID: "d", Revenue: 20},
	}

	ranked := RankCourses(courses, 3)
	assert.Equal(t, []string{"b", "d", "a"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
	assert.Equal(t, "a", courses[0].ID)
}

func TestRankTeachersSumsCourses(t *testing.T) {
	courses := []CourseFinancial{
		{ID: "c1", TeacherID: "t1", TeacherName: "One", Revenue: 100},
		{ID: "c2", TeacherID: "t2", TeacherName: "Two", Revenue: 150},
		{ID: "c3", TeacherID: "t1", Revenue: 100},
		{ID: "c4", Revenue: 1000},
	}

	ranked := RankTeachers(courses, 350, 0.5)
	require.Len(t, ranked, 2)
	assert.Equal(t, TeacherFinancial{ID: "t1", Name: "One", TotalRevenue: 200, Payout: 100, Courses: 2, Status: StatusOnTime}, ranked[0])
	assert.Equal(t, "t2", ranked[1].ID)
}

func TestPipelineGrowth(t *testing.T) {
	assert.Equal(t, 100.0, PipelineGrowth([]TrendPoint{{Revenue: 10}, {Revenue: 10}, {Revenue: 20}, {Revenue: 20}}))
	assert.Zero(t, PipelineGrowth([]TrendPoint{{Revenue: 0}, {Revenue: 0}, {Revenue: 5}}))
	assert.Zero(t, PipelineGrowth(nil))
}

func TestEmptyOverview(t *testing.T) {
	o := BuildFinancialOverview(FinancialBase{}, 0.35)

	assert.Equal(t, EmptyOverview(), o)
}
