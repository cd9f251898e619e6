package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aplus-academy/internal/models"
)

func application(course string, at time.Time) models.Application {
	return models.Application{
		CourseID:  sql.NullString{String: course, Valid: course != ""},
		CreatedAt: at,
	}
}

func TestRangeStart(t *testing.T) {
	tests := []struct {
		r    TimeRange
		want time.Time
	}{
		{Range7Days, time.Date(2026, time.October, 9, 0, 0, 0, 0, time.UTC)},
		{Range30Days, time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)},
		{Range90Days, time.Date(2026, time.July, 18, 0, 0, 0, 0, time.UTC)},
		{Range12Months, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, RangeStart(october, tt.r))
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, Range90Days, ParseTimeRange("90d"))
	assert.Equal(t, Range30Days, ParseTimeRange(""))
	assert.Equal(t, Range30Days, ParseTimeRange("1y"))
}

func TestTrendPointsDaily(t *testing.T) {
	prices := map[string]float64{"c1": 100, "c2": 40}
	apps := []models.Application{
		application("c1", time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)),
		application("c1", time.Date(2026, time.October, 9, 0, 30, 0, 0, time.UTC)),
		application("c2", time.Date(2026, time.October, 9, 23, 59, 0, 0, time.UTC)),
		application("c2", time.Date(2026, time.October, 8, 12, 0, 0, 0, time.UTC)),
		application("", time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)),
	}

	points := TrendPoints(october, Range7Days, apps, prices)

	require.Len(t, points, 7)
	assert.Equal(t, "2026-10-09", points[0].Key)
	assert.Equal(t, "2026-10-15", points[6].Key)
	assert.Equal(t, TrendPoint{Key: "2026-10-09", Label: "09 Oct", Revenue: 140, Enrollment: 2}, points[0])
	assert.Equal(t, 1, points[6].Enrollment)
	assert.Zero(t, points[5].Enrollment, "applications without a course are ignored")
}

func TestTrendPointsPregeneratesEmptyBuckets(t *testing.T) {
	assert.Len(t, TrendPoints(october, Range30Days, nil, nil), 30)
	assert.Len(t, TrendPoints(october, Range12Months, nil, nil), 12)
}

func TestTrendPointsWeekly(t *testing.T) {
	apps := []models.Application{
		// Sunday of ISO week 41 and Monday of week 42.
		application("c1", time.Date(2026, time.October, 11, 20, 0, 0, 0, time.UTC)),
		application("c1", time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)),
	}

	points := TrendPoints(october, Range90Days, apps, map[string]float64{"c1": 10})

	require.Len(t, points, 14)
	assert.Equal(t, "2026-W29", points[0].Key)
	assert.Equal(t, "2026-W41", points[12].Key)
	assert.Equal(t, "2026-W42", points[13].Key)
	assert.Equal(t, "Week 42", points[13].Label)
	assert.Equal(t, 1, points[12].Enrollment)
	assert.Equal(t, 1, points[13].Enrollment)
	assert.Equal(t, 10.0, points[13].Revenue)
}

func TestTrendPointsMonthly(t *testing.T) {
	apps := []models.Application{
		application("c1", time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)),
		application("c1", time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)),
		application("c1", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)),
	}

	points := TrendPoints(october, Range12Months, apps, map[string]float64{"c1": 5})

	require.Len(t, points, 12)
	assert.Equal(t, TrendPoint{Key: "2025-11", Label: "Nov 25", Revenue: 5, Enrollment: 1}, points[0])
	assert.Equal(t, TrendPoint{Key: "2026-10", Label: "Oct 26", Revenue: 5, Enrollment: 1}, points[11])
}
