package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"aplus-academy/internal/mapper"
	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

const dateLayout = "2006-01-02"

// groupIndex loads every group with its teacher name for student display.
func (s *Service) groupIndex(ctx context.Context) map[string]*models.GroupProfile {
	rows, err := s.store.ListGroups(ctx)
	if err != nil {
		s.degraded("list student groups", err)
		return map[string]*models.GroupProfile{}
	}
	names := s.teacherNameIndex(ctx)
	out := make(map[string]*models.GroupProfile, len(rows))
	for _, r := range rows {
		g := groupProfile(r, names)
		out[g.ID] = &g
	}
	return out
}

// ListStudents returns every student with group details and payment history,
// newest payment first. A missing students table yields an empty list.
func (s *Service) ListStudents(ctx context.Context) ([]models.StudentProfile, error) {
	rows, err := s.store.ListStudents(ctx)
	if errors.Is(err, models.ErrTableNotFound) {
		s.degraded("list students", err)
		return []models.StudentProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	groups := s.groupIndex(ctx)

	history := make(map[string][]models.PaymentHistoryEntry)
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		s.degraded("list payments", err)
	}
	for _, p := range payments {
		history[p.StudentID] = append(history[p.StudentID], mapper.PaymentFromRow(p))
	}

	out := make([]models.StudentProfile, 0, len(rows))
	for _, r := range rows {
		p := mapper.StudentFromRow(r, groups[r.GroupID.String])
		if h, ok := history[p.ID]; ok {
			p.History = h
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) student(ctx context.Context, id string) (models.StudentProfile, error) {
	row, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return models.StudentProfile{}, err
	}
	var group *models.GroupProfile
	if row.GroupID.String != "" {
		if g, err := s.GetGroup(ctx, row.GroupID.String); err == nil {
			group = &g
		}
	}
	return mapper.StudentFromRow(row, group), nil
}

func (s *Service) CreateStudent(ctx context.Context, p models.StudentProfile) (models.StudentProfile, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentUnpaid
	}
	if err := s.store.CreateStudent(ctx, mapper.StudentToRow(p)); err != nil {
		s.log.Error("failed to create student", zap.Error(err))
		return models.StudentProfile{}, fmt.Errorf("failed to create student: %w", err)
	}
	s.resync(ctx, p.GroupID)
	s.changed(ctx)

	created, err := s.student(ctx, p.ID)
	if err != nil {
		return models.StudentProfile{}, fmt.Errorf("failed to reload student: %w", err)
	}
	return created, nil
}

// UpdateStudent overwrites the student and syncs both the old and the new
// group when the assignment changed.
func (s *Service) UpdateStudent(ctx context.Context, p models.StudentProfile) (models.StudentProfile, error) {
	old, err := s.store.GetStudent(ctx, p.ID)
	if err != nil {
		return models.StudentProfile{}, fmt.Errorf("failed to update student: %w", err)
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentUnpaid
	}
	if err := s.store.UpdateStudent(ctx, mapper.StudentToRow(p)); err != nil {
		s.log.Error("failed to update student", zap.String(logger.FieldStudentID, p.ID), zap.Error(err))
		return models.StudentProfile{}, fmt.Errorf("failed to update student: %w", err)
	}
	s.resync(ctx, old.GroupID.String, p.GroupID)
	s.changed(ctx)

	updated, err := s.student(ctx, p.ID)
	if err != nil {
		return models.StudentProfile{}, fmt.Errorf("failed to reload student: %w", err)
	}
	return updated, nil
}

// DeleteStudent removes the student and its payment history.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	old, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		s.log.Error("failed to delete student", zap.String(logger.FieldStudentID, id), zap.Error(err))
		return fmt.Errorf("failed to delete student: %w", err)
	}
	s.resync(ctx, old.GroupID.String)
	s.changed(ctx)
	return nil
}

// RecordPayment appends an immutable history entry and sets the student's
// payment status to the entry's status.
func (s *Service) RecordPayment(ctx context.Context, studentID string, e models.PaymentHistoryEntry) (models.PaymentHistoryEntry, error) {
	row, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return models.PaymentHistoryEntry{}, fmt.Errorf("failed to record payment: %w", err)
	}

	e.ID = newID()
	e.StudentID = studentID
	if e.Status == "" {
		e.Status = models.PaymentPaid
	}
	if e.Method == "" {
		e.Method = models.MethodCash
	}
	if e.Date == "" {
		e.Date = s.now().Format(dateLayout)
	}

	if err := s.store.CreatePayment(ctx, mapper.PaymentToRow(e)); err != nil {
		s.log.Error("failed to record payment", zap.String(logger.FieldStudentID, studentID), zap.Error(err))
		return models.PaymentHistoryEntry{}, fmt.Errorf("failed to record payment: %w", err)
	}
	if err := s.store.SetPaymentStatus(ctx, studentID, e.Status); err != nil {
		s.log.Error("failed to set payment status", zap.String(logger.FieldStudentID, studentID), zap.Error(err))
		return models.PaymentHistoryEntry{}, fmt.Errorf("failed to record payment: %w", err)
	}
	s.resync(ctx, row.GroupID.String)
	s.changed(ctx)
	return e, nil
}
