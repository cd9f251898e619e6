package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aplus-academy/internal/analytics"
	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

func (s *Service) teachers(ctx context.Context) ([]models.TeacherProfile, error) {
	rows, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TeacherProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.TeacherFromRow(r))
	}
	return out, nil
}

func teacherNames(teachers []models.TeacherProfile) map[string]string {
	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.FullName
	}
	return names
}

// attachGroups fills each teacher's Groups from the group rows.
func attachGroups(teachers []models.TeacherProfile, groups []models.GroupRow) {
	byTeacher := make(map[string][]models.TeacherGroup)
	for _, g := range groups {
		if !g.TeacherID.Valid || g.TeacherID.String == "" {
			continue
		}
		byTeacher[g.TeacherID.String] = append(byTeacher[g.TeacherID.String], models.TeacherGroup{
			ID:       g.ID,
			Name:     g.Name,
			Schedule: g.Schedule.String,
		})
	}
	for i := range teachers {
		if gs, ok := byTeacher[teachers[i].ID]; ok {
			teachers[i].Groups = gs
		}
	}
}

// ListTeachers returns every teacher with the groups they teach. The
// teacher read is required; the group read degrades to no groups.
func (s *Service) ListTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	teachers, err := s.teachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.degraded("list teacher groups", err)
	}
	attachGroups(teachers, groups)
	return teachers, nil
}

func (s *Service) CreateTeacher(ctx context.Context, p models.TeacherProfile) (models.TeacherProfile, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.TeacherActive
	}
	if err := s.store.CreateTeacher(ctx, mapper.TeacherToRow(p)); err != nil {
		s.log.Error("failed to create teacher", zap.Error(err))
		return models.TeacherProfile{}, fmt.Errorf("failed to create teacher: %w", err)
	}
	s.changed(ctx)

	p.Groups = []models.TeacherGroup{}
	return p, nil
}

// UpdateTeacher overwrites the teacher and returns it with its groups.
func (s *Service) UpdateTeacher(ctx context.Context, p models.TeacherProfile) (models.TeacherProfile, error) {
	if p.Status == "" {
		p.Status = models.TeacherActive
	}
	if err := s.store.UpdateTeacher(ctx, mapper.TeacherToRow(p)); err != nil {
		s.log.Error("failed to update teacher", zap.String(logger.FieldTeacherID, p.ID), zap.Error(err))
		return models.TeacherProfile{}, fmt.Errorf("failed to update teacher: %w", err)
	}
	s.changed(ctx)

	row, err := s.store.GetTeacher(ctx, p.ID)
	if err != nil {
		return models.TeacherProfile{}, fmt.Errorf("failed to reload teacher: %w", err)
	}
	updated := []models.TeacherProfile{mapper.TeacherFromRow(row)}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.degraded("list teacher groups", err)
	}
	attachGroups(updated, groups)
	return updated[0], nil
}

// DeleteTeacher unassigns the teacher's groups before removing it.
func (s *Service) DeleteTeacher(ctx context.Context, id string) error {
	if err := s.store.UnassignTeacher(ctx, id); err != nil {
		s.log.Error("failed to unassign teacher groups", zap.String(logger.FieldTeacherID, id), zap.Error(err))
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if err := s.store.DeleteTeacher(ctx, id); err != nil {
		s.log.Error("failed to delete teacher", zap.String(logger.FieldTeacherID, id), zap.Error(err))
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	s.changed(ctx)
	return nil
}

// SalaryLedger totals salaries of active and inactive teachers.
func (s *Service) SalaryLedger(ctx context.Context) (analytics.SalaryLedger, error) {
	teachers, err := s.teachers(ctx)
	if err != nil {
		return analytics.SalaryLedger{}, fmt.Errorf("failed to load salaries: %w", err)
	}
	return analytics.Ledger(teachers), nil
}
