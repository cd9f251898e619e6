package mapper

import "aplus-academy/internal/models"

// StudentFromRow fills the group-derived fields from group when the student
// is assigned. History is left empty for the caller to attach.
func StudentFromRow(row models.StudentRow, group *models.GroupProfile) models.StudentProfile {
	status := models.PaymentStatus(row.PaymentStatus.String)
	if status == "" {
		status = models.PaymentUnpaid
	}

	p := models.StudentProfile{
		ID:             row.ID,
		FullName:       row.FullName,
		GroupID:        row.GroupID.String,
		ParentName:     row.ParentName.String,
		ParentContact:  row.ParentContact.String,
		MonthlyPayment: ParseAmount(row.MonthlyPayment.String),
		PaymentStatus:  status,
		PhotoURL:       row.PhotoURL.String,
		Notes:          row.Notes.String,
		History:        []models.PaymentHistoryEntry{},
	}
	if group != nil {
		p.GroupName = group.Name
		p.GroupSchedule = group.Schedule
		p.TeacherName = group.TeacherName
	}
	return p
}

func StudentToRow(p models.StudentProfile) models.StudentRow {
	return models.StudentRow{
		ID:             p.ID,
		FullName:       p.FullName,
		GroupID:        optional(p.GroupID),
		ParentName:     text(p.ParentName),
		ParentContact:  text(p.ParentContact),
		MonthlyPayment: amount(p.MonthlyPayment),
		PaymentStatus:  text(string(p.PaymentStatus)),
		PhotoURL:       optional(p.PhotoURL),
		Notes:          optional(p.Notes),
	}
}

func PaymentFromRow(row models.PaymentRow) models.PaymentHistoryEntry {
	status := models.PaymentStatus(row.Status.String)
	if status == "" {
		status = models.PaymentUnpaid
	}
	method := models.PaymentMethod(row.Method.String)
	if method == "" {
		method = models.MethodCash
	}

	return models.PaymentHistoryEntry{
		ID:        row.ID,
		StudentID: row.StudentID,
		Amount:    ParseAmount(row.Amount.String),
		Date:      row.Date,
		Status:    status,
		Method:    method,
		Note:      row.Note.String,
	}
}

func PaymentToRow(e models.PaymentHistoryEntry) models.PaymentRow {
	return models.PaymentRow{
		ID:        e.ID,
		StudentID: e.StudentID,
		Amount:    amount(e.Amount),
		Date:      e.Date,
		Status:    text(string(e.Status)),
		Method:    text(string(e.Method)),
		Note:      optional(e.Note),
	}
}
