package mapper

import (
	"database/sql"

	"aplus-academy/internal/models"
)

// GroupFromRow resolves the denormalized teacher name from the caller; an
// empty name is shown as unassigned.
func GroupFromRow(row models.GroupRow, teacherName string) models.GroupProfile {
	if teacherName == "" {
		teacherName = models.UnassignedTeacher
	}
	status := models.GroupStatus(row.Status.String)
	if status == "" {
		status = models.GroupActive
	}

	return models.GroupProfile{
		ID:              row.ID,
		Name:            row.Name,
		TeacherID:       row.TeacherID.String,
		TeacherName:     teacherName,
		Schedule:        row.Schedule.String,
		Room:            row.Room.String,
		MaxStudents:     int(row.MaxStudents.Int64),
		CurrentStudents: int(row.CurrentStudents.Int64),
		Status:          status,
		AttendanceRate:  row.AttendanceRate.Float64,
		MonthlyRevenue:  ParseAmount(row.MonthlyRevenue.String),
	}
}

func GroupToRow(p models.GroupProfile) models.GroupRow {
	return models.GroupRow{
		ID:              p.ID,
		Name:            p.Name,
		TeacherID:       optional(p.TeacherID),
		Schedule:        text(p.Schedule),
		Room:            text(p.Room),
		MaxStudents:     sql.NullInt64{Int64: int64(p.MaxStudents), Valid: true},
		CurrentStudents: sql.NullInt64{Int64: int64(p.CurrentStudents), Valid: true},
		Status:          text(string(p.Status)),
		AttendanceRate:  sql.NullFloat64{Float64: p.AttendanceRate, Valid: true},
		MonthlyRevenue:  amount(p.MonthlyRevenue),
	}
}
