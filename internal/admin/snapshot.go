package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

// ErrStoreUnavailable is returned alongside an all-zero snapshot when every
// read of a snapshot build failed.
var ErrStoreUnavailable = errors.New("record store unavailable")

// fanout runs independent reads concurrently. A failed read is logged and
// leaves its target at the zero value; the other reads are unaffected.
type fanout struct {
	svc   *Service
	ctx   context.Context
	group errgroup.Group

	mu     sync.Mutex
	total  int
	failed int
	errs   error
}

func (f *fanout) run(name string, read func(context.Context) error) {
	f.total++
	f.group.Go(func() error {
		if err := read(f.ctx); err != nil {
			f.svc.degraded(name, err)
			f.mu.Lock()
			f.failed++
			f.errs = multierr.Append(f.errs, fmt.Errorf("%s: %w", name, err))
			f.mu.Unlock()
		}
		return nil
	})
}

// wait returns ErrStoreUnavailable when no read succeeded.
func (f *fanout) wait() (partial bool, err error) {
	_ = f.group.Wait()
	if f.total > 0 && f.failed == f.total {
		return true, fmt.Errorf("%w: %w", ErrStoreUnavailable, f.errs)
	}
	return f.failed > 0, nil
}

// Snapshot builds the dashboard snapshot for the current month. It reads
// every input concurrently and always returns a structurally complete value.
// Complete snapshots are cached until the next mutation.
func (s *Service) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	now := s.now()
	key := snapshotKey(now)
	var cached analytics.Snapshot
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.log.Warn("failed to read snapshot cache", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	var (
		in          analytics.SnapshotInput
		teacherRows []models.TeacherRow
		groupRows   []models.GroupRow
		studentRows []models.StudentRow
		revenueRows []models.RevenueRow
		expenseRows []models.ExpenseRow
	)

	f := &fanout{svc: s, ctx: ctx}
	f.run("count teachers", func(ctx context.Context) (err error) {
		in.TeacherCount, err = s.store.CountTeachers(ctx)
		return err
	})
	f.run("count students", func(ctx context.Context) (err error) {
		in.StudentCount, err = s.store.CountStudents(ctx)
		return err
	})
	f.run("count groups", func(ctx context.Context) (err error) {
		in.GroupCount, err = s.store.CountGroups(ctx)
		return err
	})
	f.run("list teachers", func(ctx context.Context) (err error) {
		teacherRows, err = s.store.ListTeachers(ctx)
		return err
	})
	f.run("list groups", func(ctx context.Context) (err error) {
		groupRows, err = s.store.ListGroups(ctx)
		return err
	})
	f.run("list students", func(ctx context.Context) (err error) {
		studentRows, err = s.store.ListStudents(ctx)
		return err
	})
	f.run("list revenue", func(ctx context.Context) (err error) {
		revenueRows, err = s.store.ListRevenue(ctx)
		return err
	})
	f.run("list expenses", func(ctx context.Context) (err error) {
		expenseRows, err = s.store.ListExpenses(ctx)
		return err
	})
	partial, err := f.wait()

	for _, r := range teacherRows {
		in.Teachers = append(in.Teachers, mapper.TeacherFromRow(r))
	}
	names := teacherNames(in.Teachers)
	for _, r := range groupRows {
		in.Groups = append(in.Groups, groupProfile(r, names))
	}
	in.Students = studentProfiles(studentRows)
	for _, r := range revenueRows {
		in.Revenue = append(in.Revenue, mapper.RevenueFromRow(r))
	}
	for _, r := range expenseRows {
		in.Expenses = append(in.Expenses, mapper.ExpenseFromRow(r))
	}

	snapshot := analytics.BuildSnapshot(now, in)
	if err != nil {
		s.log.Error("dashboard snapshot built without data", zap.Error(err))
		return snapshot, err
	}
	if !partial {
		if err := s.cache.SetJSON(ctx, key, snapshot); err != nil {
			s.log.Warn("failed to cache snapshot", zap.Error(err))
		}
	}
	return snapshot, nil
}

// FinancialOverview reports course and teacher revenue for applications
// received within r. Any failed read yields the empty overview.
func (s *Service) FinancialOverview(ctx context.Context, r analytics.TimeRange, payoutRate float64) analytics.FinancialOverview {
	now := s.now()

	var (
		courses  []models.Course
		teachers []models.TeacherProfile
		apps     []models.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = s.store.ListPublishedCourses(gctx)
		return err
	})
	g.Go(func() (err error) {
		teachers, err = s.teachers(gctx)
		return err
	})
	g.Go(func() (err error) {
		apps, err = s.store.ListApplicationsSince(gctx, analytics.RangeStart(now, r))
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("financial overview unavailable", zap.String(logger.FieldRange, string(r)), zap.Error(err))
		return analytics.EmptyOverview()
	}

	base := analytics.BuildFinancialBase(now, r, courses, teachers, apps)
	return analytics.BuildFinancialOverview(base, payoutRate)
}
