package database

import (
	"context"
	"fmt"
	"time"

	"aplus-academy/internal/models"
)

const teacherColumns = `id, name, specialty, specialty_uz, specialty_ru, specialty_en, experience,
	bio, bio_uz, bio_ru, bio_en, phone, monthly_salary, status, image_url`

const groupColumns = `id, name, teacher_id, schedule, room, max_students, current_students,
	status, attendance_rate, monthly_revenue`

const studentColumns = `id, full_name, group_id, parent_name, parent_contact, monthly_payment,
	payment_status, photo_url, notes`

const paymentColumns = `id, student_id, amount, date::text AS date, status, method, note`

// Teacher operations
func (db *DB) ListTeachers(ctx context.Context) ([]models.TeacherRow, error) {
	var rows []models.TeacherRow
	err := db.SelectContext(ctx, &rows, `SELECT `+teacherColumns+` FROM teachers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) GetTeacher(ctx context.Context, id string) (models.TeacherRow, error) {
	var row models.TeacherRow
	err := db.GetContext(ctx, &row, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
	if err != nil {
		return row, fmt.Errorf("failed to get teacher %s: %w", id, classify(err))
	}
	return row, nil
}

func (db *DB) CreateTeacher(ctx context.Context, row models.TeacherRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO teachers (`+teacherColumns+`)
		VALUES (:id, :name, :specialty, :specialty_uz, :specialty_ru, :specialty_en, :experience,
		        :bio, :bio_uz, :bio_ru, :bio_en, :phone, :monthly_salary, :status, :image_url)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to create teacher: %w", classify(err))
	}
	return nil
}

func (db *DB) UpdateTeacher(ctx context.Context, row models.TeacherRow) error {
	res, err := db.NamedExecContext(ctx, `
		UPDATE teachers
		SET name = :name,
		    specialty = :specialty,
		    specialty_uz = :specialty_uz,
		    specialty_ru = :specialty_ru,
		    specialty_en = :specialty_en,
		    experience = :experience,
		    bio = :bio,
		    bio_uz = :bio_uz,
		    bio_ru = :bio_ru,
		    bio_en = :bio_en,
		    phone = :phone,
		    monthly_salary = :monthly_salary,
		    status = :status,
		    image_url = :image_url,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`, row)
	if err != nil {
		return fmt.Errorf("failed to update teacher: %w", classify(err))
	}
	return affected(res, "teacher")
}

func (db *DB) DeleteTeacher(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", classify(err))
	}
	return affected(res, "teacher")
}

func (db *DB) CountTeachers(ctx context.Context) (int, error) {
	return db.count(ctx, "teachers")
}

// Group operations
func (db *DB) ListGroups(ctx context.Context) ([]models.GroupRow, error) {
	var rows []models.GroupRow
	err := db.SelectContext(ctx, &rows, `SELECT `+groupColumns+` FROM groups ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) GetGroup(ctx context.Context, id string) (models.GroupRow, error) {
	var row models.GroupRow
	err := db.GetContext(ctx, &row, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	if err != nil {
		return row, fmt.Errorf("failed to get group %s: %w", id, classify(err))
	}
	return row, nil
}

func (db *DB) CreateGroup(ctx context.Context, row models.GroupRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO groups (`+groupColumns+`)
		VALUES (:id, :name, :teacher_id, :schedule, :room, :max_students, :current_students,
		        :status, :attendance_rate, :monthly_revenue)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", classify(err))
	}
	return nil
}

// UpdateGroup leaves the denormalized metrics alone; they belong to
// UpdateGroupMetrics.
func (db *DB) UpdateGroup(ctx context.Context, row models.GroupRow) error {
	res, err := db.NamedExecContext(ctx, `
		UPDATE groups
		SET name = :name,
		    teacher_id = :teacher_id,
		    schedule = :schedule,
		    room = :room,
		    max_students = :max_students,
		    status = :status,
		    attendance_rate = :attendance_rate,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`, row)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", classify(err))
	}
	return affected(res, "group")
}

func (db *DB) UpdateGroupMetrics(ctx context.Context, id string, currentStudents int, monthlyRevenue string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE groups
		SET current_students = $1,
		    monthly_revenue = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, currentStudents, monthlyRevenue, id)
	if err != nil {
		return fmt.Errorf("failed to update group metrics: %w", classify(err))
	}
	return nil
}

func (db *DB) DeleteGroup(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", classify(err))
	}
	return affected(res, "group")
}

// UnassignTeacher clears teacher_id on every group taught by teacherID.
func (db *DB) UnassignTeacher(ctx context.Context, teacherID string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE groups SET teacher_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE teacher_id = $1
	`, teacherID)
	if err != nil {
		return fmt.Errorf("failed to unassign teacher groups: %w", classify(err))
	}
	return nil
}

func (db *DB) CountGroups(ctx context.Context) (int, error) {
	return db.count(ctx, "groups")
}

// Student operations
func (db *DB) ListStudents(ctx context.Context) ([]models.StudentRow, error) {
	var rows []models.StudentRow
	err := db.SelectContext(ctx, &rows, `SELECT `+studentColumns+` FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) ListGroupStudents(ctx context.Context, groupID string) ([]models.StudentRow, error) {
	var rows []models.StudentRow
	err := db.SelectContext(ctx, &rows, `
		SELECT `+studentColumns+` FROM students WHERE group_id = $1 ORDER BY full_name
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group students: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) GetStudent(ctx context.Context, id string) (models.StudentRow, error) {
	var row models.StudentRow
	err := db.GetContext(ctx, &row, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if err != nil {
		return row, fmt.Errorf("failed to get student %s: %w", id, classify(err))
	}
	return row, nil
}

func (db *DB) CreateStudent(ctx context.Context, row models.StudentRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO students (`+studentColumns+`)
		VALUES (:id, :full_name, :group_id, :parent_name, :parent_contact, :monthly_payment,
		        :payment_status, :photo_url, :notes)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", classify(err))
	}
	return nil
}

func (db *DB) UpdateStudent(ctx context.Context, row models.StudentRow) error {
	res, err := db.NamedExecContext(ctx, `
		UPDATE students
		SET full_name = :full_name,
		    group_id = :group_id,
		    parent_name = :parent_name,
		    parent_contact = :parent_contact,
		    monthly_payment = :monthly_payment,
		    payment_status = :payment_status,
		    photo_url = :photo_url,
		    notes = :notes,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`, row)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", classify(err))
	}
	return affected(res, "student")
}

func (db *DB) SetPaymentStatus(ctx context.Context, studentID string, status models.PaymentStatus) error {
	res, err := db.ExecContext(ctx, `
		UPDATE students SET payment_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	`, string(status), studentID)
	if err != nil {
		return fmt.Errorf("failed to set payment status: %w", classify(err))
	}
	return affected(res, "student")
}

// DeleteStudent removes the student together with its payment history.
func (db *DB) DeleteStudent(ctx context.Context, id string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_history WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payment history: %w", classify(err))
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", classify(err))
	}
	if err := affected(res, "student"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UnassignGroup clears group_id on every student of groupID.
func (db *DB) UnassignGroup(ctx context.Context, groupID string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE students SET group_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE group_id = $1
	`, groupID)
	if err != nil {
		return fmt.Errorf("failed to unassign group students: %w", classify(err))
	}
	return nil
}

func (db *DB) CountStudents(ctx context.Context) (int, error) {
	return db.count(ctx, "students")
}

// Payment history operations
func (db *DB) ListPayments(ctx context.Context) ([]models.PaymentRow, error) {
	var rows []models.PaymentRow
	err := db.SelectContext(ctx, &rows, `
		SELECT `+paymentColumns+` FROM payment_history ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) CreatePayment(ctx context.Context, row models.PaymentRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO payment_history (id, student_id, amount, date, status, method, note)
		VALUES (:id, :student_id, :amount, :date, :status, :method, :note)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", classify(err))
	}
	return nil
}

// Finance operations
func (db *DB) ListRevenue(ctx context.Context) ([]models.RevenueRow, error) {
	var rows []models.RevenueRow
	err := db.SelectContext(ctx, &rows, `
		SELECT id, source, amount, month, note FROM revenue ORDER BY month DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) CreateRevenue(ctx context.Context, row models.RevenueRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO revenue (id, source, amount, month, note)
		VALUES (:id, :source, :amount, :month, :note)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to add revenue: %w", classify(err))
	}
	return nil
}

func (db *DB) DeleteRevenue(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM revenue WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete revenue: %w", classify(err))
	}
	return affected(res, "revenue")
}

func (db *DB) ListExpenses(ctx context.Context) ([]models.ExpenseRow, error) {
	var rows []models.ExpenseRow
	err := db.SelectContext(ctx, &rows, `
		SELECT id, category, amount, month, description, type FROM expenses ORDER BY month DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) CreateExpense(ctx context.Context, row models.ExpenseRow) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO expenses (id, category, amount, month, description, type)
		VALUES (:id, :category, :amount, :month, :description, :type)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", classify(err))
	}
	return nil
}

func (db *DB) DeleteExpense(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", classify(err))
	}
	return affected(res, "expense")
}

// Public site operations
func (db *DB) ListPublishedCourses(ctx context.Context) ([]models.Course, error) {
	var rows []models.Course
	err := db.SelectContext(ctx, &rows, `
		SELECT id, name_uz, category, price, teacher_id, is_published
		FROM courses
		WHERE is_published = TRUE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) GetCourse(ctx context.Context, id string) (models.Course, error) {
	var row models.Course
	err := db.GetContext(ctx, &row, `
		SELECT id, name_uz, category, price, teacher_id, is_published FROM courses WHERE id = $1
	`, id)
	if err != nil {
		return row, fmt.Errorf("failed to get course %s: %w", id, classify(err))
	}
	return row, nil
}

func (db *DB) ListApplicationsSince(ctx context.Context, since time.Time) ([]models.Application, error) {
	var rows []models.Application
	err := db.SelectContext(ctx, &rows, `
		SELECT id, full_name, age, phone, course_id, interests, status, locale, created_at
		FROM applications
		WHERE created_at >= $1
		ORDER BY created_at
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", classify(err))
	}
	return rows, nil
}

func (db *DB) CreateApplication(ctx context.Context, app models.Application) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO applications (id, full_name, age, phone, course_id, interests, status, locale, created_at)
		VALUES (:id, :full_name, :age, :phone, :course_id, :interests, :status, :locale, :created_at)
	`, app)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", classify(err))
	}
	return nil
}

func (db *DB) CreateContactMessage(ctx context.Context, msg models.ContactMessage) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES (:id, :name, :email, :message, :created_at)
	`, msg)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", classify(err))
	}
	return nil
}

// Admin operations
func (db *DB) GetAdminByLogin(ctx context.Context, login string) (models.Admin, error) {
	var admin models.Admin
	err := db.GetContext(ctx, &admin, `
		SELECT id, login, name, password_hash, created_at FROM admins WHERE login = $1
	`, login)
	if err != nil {
		return admin, fmt.Errorf("failed to get admin: %w", classify(err))
	}
	return admin, nil
}

func (db *DB) CreateAdmin(ctx context.Context, admin models.Admin) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO admins (id, login, name, password_hash)
		VALUES (:id, :login, :name, :password_hash)
		ON CONFLICT (login) DO UPDATE
		SET name = EXCLUDED.name,
		    password_hash = EXCLUDED.password_hash
	`, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", classify(err))
	}
	return nil
}

// count is only called with table names from this package.
func (db *DB) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, classify(err))
	}
	return n, nil
}

func affected(res interface{ RowsAffected() (int64, error) }, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, models.ErrNotFound)
	}
	return nil
}
