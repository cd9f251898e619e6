package mapper

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"aplus-academy/internal/models"
)

func str(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1500000", 1500000},
		{" 250.5 ", 250.5},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-42", -42},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestTeacherRoundTrip(t *testing.T) {
	row := models.TeacherRow{
		ID:            "t1",
		Name:          "Dilnoza Karimova",
		Specialty:     str("IELTS"),
		SpecialtyUz:   str("IELTS"),
		SpecialtyRu:   str("IELTS"),
		SpecialtyEn:   str("IELTS"),
		Experience:    sql.NullInt64{Int64: 7, Valid: true},
		Bio:           str("Band 8.5"),
		BioUz:         str("Band 8.5"),
		BioRu:         str("Band 8.5"),
		BioEn:         str("Band 8.5"),
		Phone:         str("+998901234567"),
		MonthlySalary: str("4500000"),
		Status:        str("inactive"),
		ImageURL:      str("https://cdn.example.com/t1.jpg"),
	}

	assert.Equal(t, row, TeacherToRow(TeacherFromRow(row)))

	p := TeacherFromRow(row)
	assert.Equal(t, 4500000.0, p.MonthlySalary)
	assert.Equal(t, models.TeacherInactive, p.Status)
	assert.Equal(t, p, TeacherFromRow(TeacherToRow(p)))
}

func TestTeacherFromRowDefaults(t *testing.T) {
	p := TeacherFromRow(models.TeacherRow{
		ID:            "t2",
		Name:          "No Details",
		SpecialtyUz:   str("Matematika"),
		MonthlySalary: str("n/a"),
	})

	assert.Equal(t, "Matematika", p.Subject)
	assert.Equal(t, models.TeacherActive, p.Status)
	assert.Zero(t, p.MonthlySalary)
	assert.Zero(t, p.Experience)
	assert.Empty(t, p.PhotoURL)
	assert.NotNil(t, p.Groups)
}

func TestGroupRoundTrip(t *testing.T) {
	row := models.GroupRow{
		ID:              "g1",
		Name:            "IELTS Morning",
		TeacherID:       str("t1"),
		Schedule:        str("Mon/Wed/Fri 09:00"),
		Room:            str("204"),
		MaxStudents:     sql.NullInt64{Int64: 12, Valid: true},
		CurrentStudents: sql.NullInt64{Int64: 9, Valid: true},
		Status:          str("closed"),
		AttendanceRate:  sql.NullFloat64{Float64: 92.5, Valid: true},
		MonthlyRevenue:  str("3600000"),
	}

	p := GroupFromRow(row, "Dilnoza Karimova")
	assert.Equal(t, row, GroupToRow(p))
	assert.Equal(t, p, GroupFromRow(GroupToRow(p), p.TeacherName))
}

func TestGroupFromRowUnassigned(t *testing.T) {
	p := GroupFromRow(models.GroupRow{ID: "g2", Name: "Evening"}, "")

	assert.Equal(t, models.UnassignedTeacher, p.TeacherName)
	assert.Equal(t, models.GroupActive, p.Status)
	assert.Empty(t, p.TeacherID)
	assert.False(t, GroupToRow(p).TeacherID.Valid)
}

func TestStudentRoundTrip(t *testing.T) {
	row := models.StudentRow{
		ID:             "s1",
		FullName:       "Aziz Rahimov",
		GroupID:        str("g1"),
		ParentName:     str("Rustam Rahimov"),
		ParentContact:  str("+998935551122"),
		MonthlyPayment: str("500000"),
		PaymentStatus:  str("paid"),
		PhotoURL:       str("https://cdn.example.com/s1.jpg"),
		Notes:          str("prefers mornings"),
	}
	group := &models.GroupProfile{ID: "g1", Name: "IELTS Morning", Schedule: "09:00", TeacherName: "Dilnoza"}

	p := StudentFromRow(row, group)
	assert.Equal(t, row, StudentToRow(p))
	assert.Equal(t, "IELTS Morning", p.GroupName)
	assert.Equal(t, "Dilnoza", p.TeacherName)
	assert.Equal(t, 500000.0, p.MonthlyPayment)
}

func TestStudentUnassigned(t *testing.T) {
	row := models.StudentRow{
		ID:             "s2",
		FullName:       "Malika",
		ParentName:     str("Parent"),
		ParentContact:  str("contact"),
		MonthlyPayment: str("300000"),
		PaymentStatus:  str("unpaid"),
	}

	p := StudentFromRow(row, nil)
	assert.Empty(t, p.GroupID)
	assert.Empty(t, p.GroupName)
	assert.Equal(t, row, StudentToRow(p))
}

func TestPaymentRoundTrip(t *testing.T) {
	row := models.PaymentRow{
		ID:        "p1",
		StudentID: "s1",
		Amount:    str("500000"),
		Date:      "2026-10-01",
		Status:    str("paid"),
		Method:    str("card"),
		Note:      str("October"),
	}

	e := PaymentFromRow(row)
	assert.Equal(t, models.MethodCard, e.Method)
	assert.Equal(t, row, PaymentToRow(e))
	assert.Equal(t, e, PaymentFromRow(PaymentToRow(e)))
}

func TestFinanceRoundTrip(t *testing.T) {
	rev := models.RevenueRow{ID: "r1", Source: "Summer camp", Amount: str("1200000.5"), Month: "2026-07", Note: str("camp")}
	assert.Equal(t, rev, RevenueToRow(RevenueFromRow(rev)))

	exp := models.ExpenseRow{ID: "e1", Category: "Rent", Amount: str("3000000"), Month: "2026-07", Description: str("office"), Type: str("fixed")}
	assert.Equal(t, exp, ExpenseToRow(ExpenseFromRow(exp)))
}

func TestExpenseDefaults(t *testing.T) {
	e := ExpenseFromRow(models.ExpenseRow{ID: "e2", Category: "Misc", Amount: str("12,5"), Month: "2026-07"})

	assert.Equal(t, models.ExpenseVariable, e.Type)
	assert.Zero(t, e.Amount)
}
