package analytics

import (
	"fmt"
	"time"

	"aplus-academy/internal/models"
)

type TimeRange string

const (
	Range7Days    TimeRange = "7d"
	Range30Days   TimeRange = "30d"
	Range90Days   TimeRange = "90d"
	Range12Months TimeRange = "12m"
)

// ParseTimeRange falls back to 30d for unknown input.
func ParseTimeRange(s string) TimeRange {
	switch r := TimeRange(s); r {
	case Range7Days, Range30Days, Range90Days, Range12Months:
		return r
	default:
		return Range30Days
	}
}

type TrendPoint struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Revenue    float64 `json:"revenue"`
	Enrollment int     `json:"enrollment"`
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// RangeStart is the first instant included in the window ending today.
func RangeStart(now time.Time, r TimeRange) time.Time {
	today := startOfDay(now)
	switch r {
	case Range7Days:
		return today.AddDate(0, 0, -6)
	case Range90Days:
		return today.AddDate(0, 0, -89)
	case Range12Months:
		return startOfMonth(today).AddDate(0, -11, 0)
	default:
		return today.AddDate(0, 0, -29)
	}
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

type bucketing struct {
	first func(time.Time) time.Time
	next  func(time.Time) time.Time
	key   func(time.Time) string
	label func(time.Time) string
}

func bucketingFor(r TimeRange) bucketing {
	switch r {
	case Range12Months:
		return bucketing{
			first: startOfMonth,
			next:  func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
			key:   MonthKey,
			label: func(t time.Time) string { return t.Format("Jan 06") },
		}
	case Range90Days:
		return bucketing{
			first: startOfWeek,
			next:  func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
			key:   weekKey,
			label: func(t time.Time) string { _, w := t.ISOWeek(); return fmt.Sprintf("Week %d", w) },
		}
	default:
		return bucketing{
			first: startOfDay,
			next:  func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
			key:   func(t time.Time) string { return t.Format("2006-01-02") },
			label: func(t time.Time) string { return t.Format("02 Jan") },
		}
	}
}

// TrendPoints folds applications into buckets covering the whole window, so
// buckets without applications are present with zero values. Applications
// without a course or outside the window are ignored.
func TrendPoints(now time.Time, r TimeRange, apps []models.Application, prices map[string]float64) []TrendPoint {
	b := bucketingFor(r)
	loc := now.Location()

	var points []TrendPoint
	index := make(map[string]int)
	for t := b.first(RangeStart(now, r)); !t.After(now); t = b.next(t) {
		k := b.key(t)
		index[k] = len(points)
		points = append(points, TrendPoint{Key: k, Label: b.label(t)})
	}

	for _, app := range apps {
		if !app.CourseID.Valid || app.CourseID.String == "" || app.CreatedAt.IsZero() {
			continue
		}
		i, ok := index[b.key(app.CreatedAt.In(loc))]
		if !ok {
			continue
		}
		points[i].Enrollment++
		points[i].Revenue += prices[app.CourseID.String]
	}
	return points
}
