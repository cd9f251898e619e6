package models

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrTableNotFound = errors.New("relation does not exist")
	ErrInvalidQuery  = errors.New("invalid query")
)

type TeacherStatus string

const (
	TeacherActive   TeacherStatus = "active"
	TeacherInactive TeacherStatus = "inactive"
)

type GroupStatus string

const (
	GroupActive GroupStatus = "active"
	GroupClosed GroupStatus = "closed"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

type ExpenseType string

const (
	ExpenseFixed    ExpenseType = "fixed"
	ExpenseVariable ExpenseType = "variable"
)

// UnassignedTeacher is shown for groups whose teacher is blank or unknown.
const UnassignedTeacher = "Unassigned"

// Persisted shapes. Numeric money columns are read as text and parsed by the
// mapper package.

type TeacherRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Specialty     sql.NullString `db:"specialty"`
	SpecialtyUz   sql.NullString `db:"specialty_uz"`
	SpecialtyRu   sql.NullString `db:"specialty_ru"`
	SpecialtyEn   sql.NullString `db:"specialty_en"`
	Experience    sql.NullInt64  `db:"experience"`
	Bio           sql.NullString `db:"bio"`
	BioUz         sql.NullString `db:"bio_uz"`
	BioRu         sql.NullString `db:"bio_ru"`
	BioEn         sql.NullString `db:"bio_en"`
	Phone         sql.NullString `db:"phone"`
	MonthlySalary sql.NullString `db:"monthly_salary"`
	Status        sql.NullString `db:"status"`
	ImageURL      sql.NullString `db:"image_url"`
}

type GroupRow struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	TeacherID       sql.NullString  `db:"teacher_id"`
	Schedule        sql.NullString  `db:"schedule"`
	Room            sql.NullString  `db:"room"`
	MaxStudents     sql.NullInt64   `db:"max_students"`
	CurrentStudents sql.NullInt64   `db:"current_students"`
	Status          sql.NullString  `db:"status"`
	AttendanceRate  sql.NullFloat64 `db:"attendance_rate"`
	MonthlyRevenue  sql.NullString  `db:"monthly_revenue"`
}

type StudentRow struct {
	ID             string         `db:"id"`
	FullName       string         `db:"full_name"`
	GroupID        sql.NullString `db:"group_id"`
	ParentName     sql.NullString `db:"parent_name"`
	ParentContact  sql.NullString `db:"parent_contact"`
	MonthlyPayment sql.NullString `db:"monthly_payment"`
	PaymentStatus  sql.NullString `db:"payment_status"`
	PhotoURL       sql.NullString `db:"photo_url"`
	Notes          sql.NullString `db:"notes"`
}

type PaymentRow struct {
	ID        string         `db:"id"`
	StudentID string         `db:"student_id"`
	Amount    sql.NullString `db:"amount"`
	Date      string         `db:"date"`
	Status    sql.NullString `db:"status"`
	Method    sql.NullString `db:"method"`
	Note      sql.NullString `db:"note"`
}

type RevenueRow struct {
	ID     string         `db:"id"`
	Source string         `db:"source"`
	Amount sql.NullString `db:"amount"`
	Month  string         `db:"month"`
	Note   sql.NullString `db:"note"`
}

type ExpenseRow struct {
	ID          string         `db:"id"`
	Category    string         `db:"category"`
	Amount      sql.NullString `db:"amount"`
	Month       string         `db:"month"`
	Description sql.NullString `db:"description"`
	Type        sql.NullString `db:"type"`
}

// Application entities.

type TeacherGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

type TeacherProfile struct {
	ID            string         `json:"id"`
	FullName      string         `json:"fullName"`
	Subject       string         `json:"subject"`
	Experience    int            `json:"experience"`
	Phone         string         `json:"phone"`
	MonthlySalary float64        `json:"monthlySalary"`
	Status        TeacherStatus  `json:"status"`
	PhotoURL      string         `json:"photoUrl,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Groups        []TeacherGroup `json:"groups"`
}

type GroupProfile struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	TeacherID       string      `json:"teacherId"`
	TeacherName     string      `json:"teacherName"`
	Schedule        string      `json:"schedule"`
	Room            string      `json:"room"`
	MaxStudents     int         `json:"maxStudents"`
	CurrentStudents int         `json:"currentStudents"`
	Status          GroupStatus `json:"status"`
	AttendanceRate  float64     `json:"attendanceRate"`
	MonthlyRevenue  float64     `json:"monthlyRevenue"`
}

type PaymentHistoryEntry struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	Amount    float64       `json:"amount"`
	Date      string        `json:"date"`
	Status    PaymentStatus `json:"status"`
	Method    PaymentMethod `json:"method"`
	Note      string        `json:"note,omitempty"`
}

type StudentProfile struct {
	ID             string                `json:"id"`
	FullName       string                `json:"fullName"`
	GroupID        string                `json:"groupId"`
	GroupName      string                `json:"groupName,omitempty"`
	GroupSchedule  string                `json:"groupSchedule,omitempty"`
	TeacherName    string                `json:"teacherName,omitempty"`
	ParentName     string                `json:"parentName"`
	ParentContact  string                `json:"parentContact"`
	MonthlyPayment float64               `json:"monthlyPayment"`
	PaymentStatus  PaymentStatus         `json:"paymentStatus"`
	PhotoURL       string                `json:"photoUrl,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	History        []PaymentHistoryEntry `json:"history"`
}

type RevenueRecord struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Month  string  `json:"month"`
	Note   string  `json:"note,omitempty"`
}

type ExpenseRecord struct {
	ID          string      `json:"id"`
	Category    string      `json:"category"`
	Amount      float64     `json:"amount"`
	Month       string      `json:"month"`
	Description string      `json:"description,omitempty"`
	Type        ExpenseType `json:"type"`
}

// Public-site records read by the financial overview and registration flow.

type Course struct {
	ID          string         `db:"id"`
	NameUz      string         `db:"name_uz"`
	Category    sql.NullString `db:"category"`
	Price       sql.NullString `db:"price"`
	TeacherID   sql.NullString `db:"teacher_id"`
	IsPublished bool           `db:"is_published"`
}

type Application struct {
	ID        string         `db:"id"`
	FullName  string         `db:"full_name"`
	Age       int            `db:"age"`
	Phone     string         `db:"phone"`
	CourseID  sql.NullString `db:"course_id"`
	Interests sql.NullString `db:"interests"`
	Status    string         `db:"status"`
	Locale    sql.NullString `db:"locale"`
	CreatedAt time.Time      `db:"created_at"`
}

type ContactMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

type Admin struct {
	ID           string    `db:"id"`
	Login        string    `db:"login"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Record is a row of a content table keyed by column name.
type Record map[string]any

type Filter struct {
	Column string
	Value  any
}

// Query describes a content select. Zero values mean all columns, no
// filters, default ordering and no limit.
type Query struct {
	Columns []string
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}
