// Package inmem is a map-backed store with the same method set as
// database.DB. Lists come back in insertion order. Any method can be made to
// fail with Fail.
package inmem

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"aplus-academy/internal/database"
	"aplus-academy/internal/models"
)

type DB struct {
	mutex sync.RWMutex

	teachers []models.TeacherRow
	groups   []models.GroupRow
	students []models.StudentRow
	payments []models.PaymentRow
	revenue  []models.RevenueRow
	expenses []models.ExpenseRow
	courses  []models.Course
	apps     []models.Application
	messages []models.ContactMessage
	admins   []models.Admin
	content  map[string][]models.Record

	failures map[string]error
	calls    map[string]int
}

func New() *DB {
	return &DB{
		content:  make(map[string][]models.Record),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Fail makes every later call to method return err. A nil err clears it.
func (db *DB) Fail(method string, err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err == nil {
		delete(db.failures, method)
		return
	}
	db.failures[method] = err
}

// Calls reports how many times method was invoked.
func (db *DB) Calls(method string) int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.calls[method]
}

// enter records the call and returns the injected failure, if any. The caller
// must hold the mutex.
func (db *DB) enter(method string) error {
	db.calls[method]++
	return db.failures[method]
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, models.ErrNotFound)
}

func index[T any](rows []T, match func(T) bool) int {
	return slices.IndexFunc(rows, match)
}

// Teachers

func (db *DB) ListTeachers(_ context.Context) ([]models.TeacherRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListTeachers"); err != nil {
		return nil, err
	}
	return slices.Clone(db.teachers), nil
}

func (db *DB) GetTeacher(_ context.Context, id string) (models.TeacherRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("GetTeacher"); err != nil {
		return models.TeacherRow{}, err
	}
	if i := index(db.teachers, func(r models.TeacherRow) bool { return r.ID == id }); i >= 0 {
		return db.teachers[i], nil
	}
	return models.TeacherRow{}, notFound("teacher", id)
}

func (db *DB) CreateTeacher(_ context.Context, row models.TeacherRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateTeacher"); err != nil {
		return err
	}
	db.teachers = append(db.teachers, row)
	return nil
}

func (db *DB) UpdateTeacher(_ context.Context, row models.TeacherRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UpdateTeacher"); err != nil {
		return err
	}
	i := index(db.teachers, func(r models.TeacherRow) bool { return r.ID == row.ID })
	if i < 0 {
		return notFound("teacher", row.ID)
	}
	db.teachers[i] = row
	return nil
}

func (db *DB) DeleteTeacher(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteTeacher"); err != nil {
		return err
	}
	i := index(db.teachers, func(r models.TeacherRow) bool { return r.ID == id })
	if i < 0 {
		return notFound("teacher", id)
	}
	db.teachers = slices.Delete(db.teachers, i, i+1)
	return nil
}

func (db *DB) CountTeachers(_ context.Context) (int, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CountTeachers"); err != nil {
		return 0, err
	}
	return len(db.teachers), nil
}

// Groups

func (db *DB) ListGroups(_ context.Context) ([]models.GroupRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListGroups"); err != nil {
		return nil, err
	}
	return slices.Clone(db.groups), nil
}

func (db *DB) GetGroup(_ context.Context, id string) (models.GroupRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("GetGroup"); err != nil {
		return models.GroupRow{}, err
	}
	if i := index(db.groups, func(r models.GroupRow) bool { return r.ID == id }); i >= 0 {
		return db.groups[i], nil
	}
	return models.GroupRow{}, notFound("group", id)
}

func (db *DB) CreateGroup(_ context.Context, row models.GroupRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateGroup"); err != nil {
		return err
	}
	db.groups = append(db.groups, row)
	return nil
}

func (db *DB) UpdateGroup(_ context.Context, row models.GroupRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UpdateGroup"); err != nil {
		return err
	}
	i := index(db.groups, func(r models.GroupRow) bool { return r.ID == row.ID })
	if i < 0 {
		return notFound("group", row.ID)
	}
	row.CurrentStudents = db.groups[i].CurrentStudents
	row.MonthlyRevenue = db.groups[i].MonthlyRevenue
	db.groups[i] = row
	return nil
}

func (db *DB) UpdateGroupMetrics(_ context.Context, id string, currentStudents int, monthlyRevenue string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UpdateGroupMetrics"); err != nil {
		return err
	}
	i := index(db.groups, func(r models.GroupRow) bool { return r.ID == id })
	if i < 0 {
		return nil
	}
	db.groups[i].CurrentStudents.Int64, db.groups[i].CurrentStudents.Valid = int64(currentStudents), true
	db.groups[i].MonthlyRevenue.String, db.groups[i].MonthlyRevenue.Valid = monthlyRevenue, true
	return nil
}

func (db *DB) DeleteGroup(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteGroup"); err != nil {
		return err
	}
	i := index(db.groups, func(r models.GroupRow) bool { return r.ID == id })
	if i < 0 {
		return notFound("group", id)
	}
	db.groups = slices.Delete(db.groups, i, i+1)
	return nil
}

func (db *DB) UnassignTeacher(_ context.Context, teacherID string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UnassignTeacher"); err != nil {
		return err
	}
	for i := range db.groups {
		if db.groups[i].TeacherID.String == teacherID {
			db.groups[i].TeacherID.String, db.groups[i].TeacherID.Valid = "", false
		}
	}
	return nil
}

func (db *DB) CountGroups(_ context.Context) (int, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CountGroups"); err != nil {
		return 0, err
	}
	return len(db.groups), nil
}

// Students

func (db *DB) ListStudents(_ context.Context) ([]models.StudentRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListStudents"); err != nil {
		return nil, err
	}
	return slices.Clone(db.students), nil
}

func (db *DB) ListGroupStudents(_ context.Context, groupID string) ([]models.StudentRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListGroupStudents"); err != nil {
		return nil, err
	}
	var out []models.StudentRow
	for _, s := range db.students {
		if s.GroupID.Valid && s.GroupID.String == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (db *DB) GetStudent(_ context.Context, id string) (models.StudentRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("GetStudent"); err != nil {
		return models.StudentRow{}, err
	}
	if i := index(db.students, func(r models.StudentRow) bool { return r.ID == id }); i >= 0 {
		return db.students[i], nil
	}
	return models.StudentRow{}, notFound("student", id)
}

func (db *DB) CreateStudent(_ context.Context, row models.StudentRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateStudent"); err != nil {
		return err
	}
	db.students = append(db.students, row)
	return nil
}

func (db *DB) UpdateStudent(_ context.Context, row models.StudentRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UpdateStudent"); err != nil {
		return err
	}
	i := index(db.students, func(r models.StudentRow) bool { return r.ID == row.ID })
	if i < 0 {
		return notFound("student", row.ID)
	}
	db.students[i] = row
	return nil
}

func (db *DB) SetPaymentStatus(_ context.Context, studentID string, status models.PaymentStatus) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("SetPaymentStatus"); err != nil {
		return err
	}
	i := index(db.students, func(r models.StudentRow) bool { return r.ID == studentID })
	if i < 0 {
		return notFound("student", studentID)
	}
	db.students[i].PaymentStatus.String, db.students[i].PaymentStatus.Valid = string(status), true
	return nil
}

func (db *DB) DeleteStudent(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteStudent"); err != nil {
		return err
	}
	i := index(db.students, func(r models.StudentRow) bool { return r.ID == id })
	if i < 0 {
		return notFound("student", id)
	}
	db.students = slices.Delete(db.students, i, i+1)
	db.payments = slices.DeleteFunc(db.payments, func(p models.PaymentRow) bool { return p.StudentID == id })
	return nil
}

func (db *DB) UnassignGroup(_ context.Context, groupID string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UnassignGroup"); err != nil {
		return err
	}
	for i := range db.students {
		if db.students[i].GroupID.String == groupID {
			db.students[i].GroupID.String, db.students[i].GroupID.Valid = "", false
		}
	}
	return nil
}

func (db *DB) CountStudents(_ context.Context) (int, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CountStudents"); err != nil {
		return 0, err
	}
	return len(db.students), nil
}

// Payments

// ListPayments returns the newest payment first, like the SQL store.
func (db *DB) ListPayments(_ context.Context) ([]models.PaymentRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListPayments"); err != nil {
		return nil, err
	}
	out := slices.Clone(db.payments)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.PaymentRow) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (db *DB) CreatePayment(_ context.Context, row models.PaymentRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreatePayment"); err != nil {
		return err
	}
	db.payments = append(db.payments, row)
	return nil
}

// Finance

func (db *DB) ListRevenue(_ context.Context) ([]models.RevenueRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListRevenue"); err != nil {
		return nil, err
	}
	return slices.Clone(db.revenue), nil
}

func (db *DB) CreateRevenue(_ context.Context, row models.RevenueRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateRevenue"); err != nil {
		return err
	}
	db.revenue = append(db.revenue, row)
	return nil
}

func (db *DB) DeleteRevenue(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteRevenue"); err != nil {
		return err
	}
	i := index(db.revenue, func(r models.RevenueRow) bool { return r.ID == id })
	if i < 0 {
		return notFound("revenue", id)
	}
	db.revenue = slices.Delete(db.revenue, i, i+1)
	return nil
}

func (db *DB) ListExpenses(_ context.Context) ([]models.ExpenseRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListExpenses"); err != nil {
		return nil, err
	}
	return slices.Clone(db.expenses), nil
}

func (db *DB) CreateExpense(_ context.Context, row models.ExpenseRow) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateExpense"); err != nil {
		return err
	}
	db.expenses = append(db.expenses, row)
	return nil
}

func (db *DB) DeleteExpense(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteExpense"); err != nil {
		return err
	}
	i := index(db.expenses, func(r models.ExpenseRow) bool { return r.ID == id })
	if i < 0 {
		return notFound("expense", id)
	}
	db.expenses = slices.Delete(db.expenses, i, i+1)
	return nil
}

// Public site

// AddCourse seeds a course for the read-only course queries.
func (db *DB) AddCourse(c models.Course) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.courses = append(db.courses, c)
}

func (db *DB) ListPublishedCourses(_ context.Context) ([]models.Course, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListPublishedCourses"); err != nil {
		return nil, err
	}
	var out []models.Course
	for _, c := range db.courses {
		if c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

func (db *DB) GetCourse(_ context.Context, id string) (models.Course, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("GetCourse"); err != nil {
		return models.Course{}, err
	}
	if i := index(db.courses, func(c models.Course) bool { return c.ID == id }); i >= 0 {
		return db.courses[i], nil
	}
	return models.Course{}, notFound("course", id)
}

func (db *DB) ListApplicationsSince(_ context.Context, since time.Time) ([]models.Application, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("ListApplicationsSince"); err != nil {
		return nil, err
	}
	var out []models.Application
	for _, a := range db.apps {
		if !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (db *DB) CreateApplication(_ context.Context, app models.Application) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateApplication"); err != nil {
		return err
	}
	db.apps = append(db.apps, app)
	return nil
}

// Applications returns every stored application.
func (db *DB) Applications() []models.Application {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return slices.Clone(db.apps)
}

func (db *DB) CreateContactMessage(_ context.Context, msg models.ContactMessage) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateContactMessage"); err != nil {
		return err
	}
	db.messages = append(db.messages, msg)
	return nil
}

func (db *DB) ContactMessages() []models.ContactMessage {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return slices.Clone(db.messages)
}

// Admins

func (db *DB) GetAdminByLogin(_ context.Context, login string) (models.Admin, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("GetAdminByLogin"); err != nil {
		return models.Admin{}, err
	}
	if i := index(db.admins, func(a models.Admin) bool { return a.Login == login }); i >= 0 {
		return db.admins[i], nil
	}
	return models.Admin{}, notFound("admin", login)
}

func (db *DB) CreateAdmin(_ context.Context, admin models.Admin) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CreateAdmin"); err != nil {
		return err
	}
	if i := index(db.admins, func(a models.Admin) bool { return a.Login == admin.Login }); i >= 0 {
		db.admins[i].Name = admin.Name
		db.admins[i].PasswordHash = admin.PasswordHash
		return nil
	}
	db.admins = append(db.admins, admin)
	return nil
}

// Content records

func checkTable(table string) error {
	if !slices.Contains(database.ContentTables(), table) {
		return fmt.Errorf("%w: unknown table %q", models.ErrInvalidQuery, table)
	}
	return nil
}

func matches(rec models.Record, filters []models.Filter) bool {
	for _, f := range filters {
		if rec[f.Column] != f.Value {
			return false
		}
	}
	return true
}

func project(rec models.Record, columns []string) models.Record {
	out := make(models.Record, len(rec))
	if len(columns) == 0 {
		for k, v := range rec {
			out[k] = v
		}
		return out
	}
	for _, c := range columns {
		out[c] = rec[c]
	}
	return out
}

func (db *DB) SelectRecords(_ context.Context, table string, q models.Query) ([]models.Record, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("SelectRecords"); err != nil {
		return nil, err
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	out := []models.Record{}
	for _, rec := range db.content[table] {
		if !matches(rec, q.Filters) {
			continue
		}
		out = append(out, project(rec, q.Columns))
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (db *DB) InsertRecord(_ context.Context, table string, rec models.Record) (models.Record, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("InsertRecord"); err != nil {
		return nil, err
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	stored := project(rec, nil)
	db.content[table] = append(db.content[table], stored)
	return project(stored, nil), nil
}

func (db *DB) UpdateRecord(_ context.Context, table, id string, rec models.Record) (models.Record, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("UpdateRecord"); err != nil {
		return nil, err
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	for _, stored := range db.content[table] {
		if stored["id"] != id {
			continue
		}
		for k, v := range rec {
			if k != "id" {
				stored[k] = v
			}
		}
		return project(stored, nil), nil
	}
	return nil, notFound(table, id)
}

func (db *DB) DeleteRecord(_ context.Context, table, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("DeleteRecord"); err != nil {
		return err
	}
	if err := checkTable(table); err != nil {
		return err
	}
	recs := db.content[table]
	i := index(recs, func(r models.Record) bool { return r["id"] == id })
	if i < 0 {
		return notFound(table, id)
	}
	db.content[table] = slices.Delete(recs, i, i+1)
	return nil
}

func (db *DB) CountRecords(_ context.Context, table string, filters []models.Filter) (int, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err := db.enter("CountRecords"); err != nil {
		return 0, err
	}
	if err := checkTable(table); err != nil {
		return 0, err
	}
	n := 0
	for _, rec := range db.content[table] {
		if matches(rec, filters) {
			n++
		}
	}
	return n, nil
}
