// Package admin implements the back-office operations: entity CRUD, the
// dashboard snapshot, the financial overview and group metric
// synchronization.
package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

const (
	defaultPayoutRate    = 0.35
	defaultNotifyTimeout = 10 * time.Second

	snapshotCacheKey = "dashboard:snapshot:"
)

// snapshotKey scopes the cached snapshot to the month it describes.
func snapshotKey(now time.Time) string {
	return snapshotCacheKey + analytics.MonthKey(now)
}

type TeacherStore interface {
	ListTeachers(ctx context.Context) ([]models.TeacherRow, error)
	GetTeacher(ctx context.Context, id string) (models.TeacherRow, error)
	CreateTeacher(ctx context.Context, row models.TeacherRow) error
	UpdateTeacher(ctx context.Context, row models.TeacherRow) error
	DeleteTeacher(ctx context.Context, id string) error
	CountTeachers(ctx context.Context) (int, error)
}

type GroupStore interface {
	ListGroups(ctx context.Context) ([]models.GroupRow, error)
	GetGroup(ctx context.Context, id string) (models.GroupRow, error)
	CreateGroup(ctx context.Context, row models.GroupRow) error
	UpdateGroup(ctx context.Context, row models.GroupRow) error
	UpdateGroupMetrics(ctx context.Context, id string, currentStudents int, monthlyRevenue string) error
	DeleteGroup(ctx context.Context, id string) error
	UnassignTeacher(ctx context.Context, teacherID string) error
	CountGroups(ctx context.Context) (int, error)
}

type StudentStore interface {
	ListStudents(ctx context.Context) ([]models.StudentRow, error)
	ListGroupStudents(ctx context.Context, groupID string) ([]models.StudentRow, error)
	GetStudent(ctx context.Context, id string) (models.StudentRow, error)
	CreateStudent(ctx context.Context, row models.StudentRow) error
	UpdateStudent(ctx context.Context, row models.StudentRow) error
	SetPaymentStatus(ctx context.Context, studentID string, status models.PaymentStatus) error
	DeleteStudent(ctx context.Context, id string) error
	UnassignGroup(ctx context.Context, groupID string) error
	CountStudents(ctx context.Context) (int, error)
	ListPayments(ctx context.Context) ([]models.PaymentRow, error)
	CreatePayment(ctx context.Context, row models.PaymentRow) error
}

type FinanceStore interface {
	ListRevenue(ctx context.Context) ([]models.RevenueRow, error)
	CreateRevenue(ctx context.Context, row models.RevenueRow) error
	DeleteRevenue(ctx context.Context, id string) error
	ListExpenses(ctx context.Context) ([]models.ExpenseRow, error)
	CreateExpense(ctx context.Context, row models.ExpenseRow) error
	DeleteExpense(ctx context.Context, id string) error
}

type SiteStore interface {
	ListPublishedCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (models.Course, error)
	ListApplicationsSince(ctx context.Context, since time.Time) ([]models.Application, error)
	CreateApplication(ctx context.Context, app models.Application) error
	CreateContactMessage(ctx context.Context, msg models.ContactMessage) error
}

type ContentStore interface {
	SelectRecords(ctx context.Context, table string, q models.Query) ([]models.Record, error)
	InsertRecord(ctx context.Context, table string, rec models.Record) (models.Record, error)
	UpdateRecord(ctx context.Context, table, id string, rec models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, table, id string) error
	CountRecords(ctx context.Context, table string, filters []models.Filter) (int, error)
}

type AdminStore interface {
	GetAdminByLogin(ctx context.Context, login string) (models.Admin, error)
	CreateAdmin(ctx context.Context, admin models.Admin) error
}

// Store is everything the service reads and writes. *database.DB and
// *inmem.DB both satisfy it.
type Store interface {
	TeacherStore
	GroupStore
	StudentStore
	FinanceStore
	SiteStore
	ContentStore
	AdminStore
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) SetJSON(context.Context, string, any) error         { return nil }
func (nopCache) Delete(context.Context, ...string) error            { return nil }

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, string) error { return nil }

type Service struct {
	store         Store
	cache         Cache
	notifier      Notifier
	log           *zap.Logger
	now           func() time.Time
	payoutRate    float64
	notifyTimeout time.Duration

	pending sync.WaitGroup
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPayoutRate sets the default teacher payout share used by the
// financial overview.
func WithPayoutRate(rate float64) Option {
	return func(s *Service) { s.payoutRate = rate }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		cache:         nopCache{},
		notifier:      nopNotifier{},
		log:           zap.L(),
		now:           time.Now,
		payoutRate:    defaultPayoutRate,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PayoutRate is the configured default payout share.
func (s *Service) PayoutRate() float64 {
	return s.payoutRate
}

// Wait blocks until every pending notification has been attempted.
func (s *Service) Wait() {
	s.pending.Wait()
}

func newID() string {
	return uuid.NewString()
}

// changed drops cached aggregates after a mutation.
func (s *Service) changed(ctx context.Context) {
	if err := s.cache.Delete(ctx, snapshotKey(s.now())); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", zap.Error(err))
	}
}

// notify sends text in the background. The outcome is only logged.
func (s *Service) notify(ctx context.Context, operation, text string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, text); err != nil {
			s.log.Warn("notification failed", zap.String(logger.FieldOperation, operation), zap.Error(err))
		}
	}()
}

// degraded logs a failed read whose result is replaced by an empty value.
// Missing tables are expected during schema rollout and logged at debug.
func (s *Service) degraded(operation string, err error) {
	if errors.Is(err, models.ErrTableNotFound) {
		s.log.Debug("table not found, using empty result", zap.String(logger.FieldOperation, operation), zap.Error(err))
		return
	}
	s.log.Warn("read failed, using empty result", zap.String(logger.FieldOperation, operation), zap.Error(err))
}
