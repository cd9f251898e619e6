package admin

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

func studentProfiles(rows []models.StudentRow) []models.StudentProfile {
	out := make([]models.StudentProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.StudentFromRow(r, nil))
	}
	return out
}

// SyncGroupMetrics recomputes the student count and paid revenue stored on
// groupID, or on every group when groupID is empty. Groups without students
// are written back as zero. Writes are unconditional; a concurrent student
// mutation may leave the result stale until the next sync.
func (s *Service) SyncGroupMetrics(ctx context.Context, groupID string) error {
	if groupID != "" {
		rows, err := s.store.ListGroupStudents(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to sync group %s: %w", groupID, err)
		}
		totals := analytics.GroupMetrics(groupID, studentProfiles(rows))
		if err := s.store.UpdateGroupMetrics(ctx, groupID, totals.CurrentStudents, mapper.FormatAmount(totals.MonthlyRevenue)); err != nil {
			return fmt.Errorf("failed to sync group %s: %w", groupID, err)
		}
		return nil
	}

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync groups: %w", err)
	}
	rows, err := s.store.ListStudents(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync groups: %w", err)
	}

	byGroup := analytics.GroupMetricsByID(studentProfiles(rows))
	var errs error
	for _, g := range groups {
		totals := byGroup[g.ID]
		err := s.store.UpdateGroupMetrics(ctx, g.ID, totals.CurrentStudents, mapper.FormatAmount(totals.MonthlyRevenue))
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return fmt.Errorf("failed to sync groups: %w", errs)
	}
	return nil
}

// resync runs SyncGroupMetrics for each distinct non-empty group id after a
// mutation. Failures are logged and do not undo the mutation.
func (s *Service) resync(ctx context.Context, groupIDs ...string) {
	seen := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if err := s.SyncGroupMetrics(ctx, id); err != nil {
			s.log.Error("group metrics sync failed", zap.String(logger.FieldGroupID, id), zap.Error(err))
		}
	}
}
