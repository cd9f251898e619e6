package mapper

import (
	"database/sql"

	"aplus-academy/internal/models"
)

func TeacherFromRow(row models.TeacherRow) models.TeacherProfile {
	status := models.TeacherStatus(row.Status.String)
	if status == "" {
		status = models.TeacherActive
	}

	return models.TeacherProfile{
		ID:            row.ID,
		FullName:      row.Name,
		Subject:       firstNonEmpty(row.Specialty, row.SpecialtyUz),
		Experience:    int(row.Experience.Int64),
		Phone:         row.Phone.String,
		MonthlySalary: ParseAmount(row.MonthlySalary.String),
		Status:        status,
		PhotoURL:      row.ImageURL.String,
		Bio:           firstNonEmpty(row.Bio, row.BioUz),
		Groups:        []models.TeacherGroup{},
	}
}

// TeacherToRow writes the single subject and bio into every locale column;
// the admin forms do not author per-locale teacher text.
func TeacherToRow(p models.TeacherProfile) models.TeacherRow {
	return models.TeacherRow{
		ID:            p.ID,
		Name:          p.FullName,
		Specialty:     text(p.Subject),
		SpecialtyUz:   text(p.Subject),
		SpecialtyRu:   text(p.Subject),
		SpecialtyEn:   text(p.Subject),
		Experience:    sql.NullInt64{Int64: int64(p.Experience), Valid: true},
		Bio:           text(p.Bio),
		BioUz:         text(p.Bio),
		BioRu:         text(p.Bio),
		BioEn:         text(p.Bio),
		Phone:         text(p.Phone),
		MonthlySalary: amount(p.MonthlySalary),
		Status:        text(string(p.Status)),
		ImageURL:      optional(p.PhotoURL),
	}
}
