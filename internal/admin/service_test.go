package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aplus-academy/internal/admin"
	"aplus-academy/internal/cache"
	"aplus-academy/internal/database"
	"aplus-academy/internal/database/inmem"
	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/internal/notify"
)

var (
	_ admin.Store    = (*database.DB)(nil)
	_ admin.Store    = (*inmem.DB)(nil)
	_ admin.Cache    = (*cache.Cache)(nil)
	_ admin.Notifier = (*notify.Telegram)(nil)
	_ admin.Notifier = notify.Nop{}
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var errBoom = errors.New("connection reset")

type recorder struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (r *recorder) Send(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return r.err
}

func (r *recorder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func newService(t *testing.T, opts ...admin.Option) (*admin.Service, *inmem.DB) {
	t.Helper()
	db := inmem.New()
	opts = append([]admin.Option{admin.WithClock(func() time.Time { return testNow }), admin.WithLogger(zap.NewNop())}, opts...)
	return admin.New(db, opts...), db
}

func seedTeacher(t *testing.T, db *inmem.DB, p models.TeacherProfile) {
	t.Helper()
	require.NoError(t, db.CreateTeacher(context.Background(), mapper.TeacherToRow(p)))
}

func seedGroup(t *testing.T, db *inmem.DB, p models.GroupProfile) {
	t.Helper()
	require.NoError(t, db.CreateGroup(context.Background(), mapper.GroupToRow(p)))
}

func seedStudent(t *testing.T, db *inmem.DB, p models.StudentProfile) {
	t.Helper()
	require.NoError(t, db.CreateStudent(context.Background(), mapper.StudentToRow(p)))
}

// seedAcademy stores one teacher, two groups and three students in g1. The
// group metrics start out stale.
func seedAcademy(t *testing.T, db *inmem.DB) {
	t.Helper()
	seedTeacher(t, db, models.TeacherProfile{ID: "t1", FullName: "Aziza Karimova", Subject: "English", MonthlySalary: 600000, Status: models.TeacherActive})
	seedGroup(t, db, models.GroupProfile{ID: "g1", Name: "IELTS A", TeacherID: "t1", MaxStudents: 10, CurrentStudents: 9, MonthlyRevenue: 1})
	seedGroup(t, db, models.GroupProfile{ID: "g2", Name: "Kids B", MaxStudents: 8, CurrentStudents: 5, MonthlyRevenue: 999})
	seedStudent(t, db, models.StudentProfile{ID: "s1", FullName: "Ali", GroupID: "g1", MonthlyPayment: 500000, PaymentStatus: models.PaymentPaid})
	seedStudent(t, db, models.StudentProfile{ID: "s2", FullName: "Vali", GroupID: "g1", MonthlyPayment: 400000, PaymentStatus: models.PaymentUnpaid})
	seedStudent(t, db, models.StudentProfile{ID: "s3", FullName: "Sara", GroupID: "g1", MonthlyPayment: 300000, PaymentStatus: models.PaymentPaid})
}

func storedGroup(t *testing.T, db *inmem.DB, id string) models.GroupProfile {
	t.Helper()
	row, err := db.GetGroup(context.Background(), id)
	require.NoError(t, err)
	return mapper.GroupFromRow(row, "")
}
