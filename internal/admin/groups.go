package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

// teacherNameIndex maps teacher ids to names; a failed read leaves every
// group unassigned rather than failing the caller.
func (s *Service) teacherNameIndex(ctx context.Context) map[string]string {
	teachers, err := s.teachers(ctx)
	if err != nil {
		s.degraded("list group teachers", err)
		return map[string]string{}
	}
	return teacherNames(teachers)
}

func groupProfile(row models.GroupRow, names map[string]string) models.GroupProfile {
	return mapper.GroupFromRow(row, names[row.TeacherID.String])
}

// ListGroups synchronizes every group's metrics first so the figures shown
// are fresh.
func (s *Service) ListGroups(ctx context.Context) ([]models.GroupProfile, error) {
	if err := s.SyncGroupMetrics(ctx, ""); err != nil {
		s.log.Error("group metrics sync failed", zap.Error(err))
	}

	rows, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	names := s.teacherNameIndex(ctx)
	out := make([]models.GroupProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, groupProfile(r, names))
	}
	return out, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (models.GroupProfile, error) {
	row, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return models.GroupProfile{}, fmt.Errorf("failed to get group: %w", err)
	}
	return groupProfile(row, s.teacherNameIndex(ctx)), nil
}

// CreateGroup stores a new group with zeroed metrics and syncs it.
func (s *Service) CreateGroup(ctx context.Context, p models.GroupProfile) (models.GroupProfile, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.GroupActive
	}
	p.CurrentStudents, p.MonthlyRevenue = 0, 0

	if err := s.store.CreateGroup(ctx, mapper.GroupToRow(p)); err != nil {
		s.log.Error("failed to create group", zap.Error(err))
		return models.GroupProfile{}, fmt.Errorf("failed to create group: %w", err)
	}
	s.resync(ctx, p.ID)
	s.changed(ctx)
	return s.GetGroup(ctx, p.ID)
}

// UpdateGroup overwrites the editable fields; the metrics are recomputed.
func (s *Service) UpdateGroup(ctx context.Context, p models.GroupProfile) (models.GroupProfile, error) {
	if p.Status == "" {
		p.Status = models.GroupActive
	}
	if err := s.store.UpdateGroup(ctx, mapper.GroupToRow(p)); err != nil {
		s.log.Error("failed to update group", zap.String(logger.FieldGroupID, p.ID), zap.Error(err))
		return models.GroupProfile{}, fmt.Errorf("failed to update group: %w", err)
	}
	s.resync(ctx, p.ID)
	s.changed(ctx)
	return s.GetGroup(ctx, p.ID)
}

// DeleteGroup detaches the group's students before removing it.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	if err := s.store.UnassignGroup(ctx, id); err != nil {
		s.log.Error("failed to unassign group students", zap.String(logger.FieldGroupID, id), zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := s.store.DeleteGroup(ctx, id); err != nil {
		s.log.Error("failed to delete group", zap.String(logger.FieldGroupID, id), zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}
	s.changed(ctx)
	return nil
}

func (s *Service) ListGroupStudents(ctx context.Context, groupID string) ([]models.StudentProfile, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListGroupStudents(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group students: %w", err)
	}
	out := make([]models.StudentProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.StudentFromRow(r, &group))
	}
	return out, nil
}
