package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

// publicTables are readable without a session. The value reports whether
// rows carry an is_published flag to filter on.
var publicTables = map[string]bool{
	"courses":          true,
	"events":           true,
	"achievements":     true,
	"testimonials":     true,
	"schedule_entries": true,
	"categories":       false,
	"content_blocks":   false,
}

// ListRecords selects rows of a content table. A missing table yields an
// empty list.
func (s *Service) ListRecords(ctx context.Context, table string, q models.Query) ([]models.Record, error) {
	recs, err := s.store.SelectRecords(ctx, table, q)
	if errors.Is(err, models.ErrTableNotFound) {
		s.degraded("select "+table, err)
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return recs, nil
}

func (s *Service) CreateRecord(ctx context.Context, table string, rec models.Record) (models.Record, error) {
	if rec == nil {
		rec = models.Record{}
	}
	if id, _ := rec["id"].(string); id == "" {
		rec["id"] = newID()
	}
	created, err := s.store.InsertRecord(ctx, table, rec)
	if err != nil {
		s.log.Error("failed to create record", zap.String(logger.FieldTable, table), zap.Error(err))
		return nil, fmt.Errorf("failed to create %s record: %w", table, err)
	}
	return created, nil
}

func (s *Service) UpdateRecord(ctx context.Context, table, id string, rec models.Record) (models.Record, error) {
	updated, err := s.store.UpdateRecord(ctx, table, id, rec)
	if err != nil {
		s.log.Error("failed to update record", zap.String(logger.FieldTable, table), zap.Error(err))
		return nil, fmt.Errorf("failed to update %s record: %w", table, err)
	}
	return updated, nil
}

func (s *Service) DeleteRecord(ctx context.Context, table, id string) error {
	if err := s.store.DeleteRecord(ctx, table, id); err != nil {
		s.log.Error("failed to delete record", zap.String(logger.FieldTable, table), zap.Error(err))
		return fmt.Errorf("failed to delete %s record: %w", table, err)
	}
	return nil
}

// CountRecords counts matching rows; a missing table counts as zero.
func (s *Service) CountRecords(ctx context.Context, table string, filters []models.Filter) (int, error) {
	n, err := s.store.CountRecords(ctx, table, filters)
	if errors.Is(err, models.ErrTableNotFound) {
		s.degraded("count "+table, err)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// ListPublished returns the public rows of table, newest first.
func (s *Service) ListPublished(ctx context.Context, table string) ([]models.Record, error) {
	flagged, ok := publicTables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not public", models.ErrInvalidQuery, table)
	}
	var q models.Query
	if flagged {
		q.Filters = []models.Filter{{Column: "is_published", Value: true}}
	}
	return s.ListRecords(ctx, table, q)
}

// ContentBlocks returns the text blocks of one page section in one locale,
// keyed by content key.
func (s *Service) ContentBlocks(ctx context.Context, section, locale string) (map[string]string, error) {
	recs, err := s.ListRecords(ctx, "content_blocks", models.Query{
		Columns: []string{"content_key", "value"},
		Filters: []models.Filter{{Column: "section", Value: section}, {Column: "locale", Value: locale}},
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(recs))
	for _, r := range recs {
		key, _ := r["content_key"].(string)
		value, _ := r["value"].(string)
		if key != "" {
			out[key] = value
		}
	}
	return out, nil
}

// PublicTeachers lists active teachers for the public site.
func (s *Service) PublicTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	teachers, err := s.teachers(ctx)
	if errors.Is(err, models.ErrTableNotFound) {
		return []models.TeacherProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	out := make([]models.TeacherProfile, 0, len(teachers))
	for _, t := range teachers {
		if t.Status == models.TeacherActive {
			t.Phone, t.MonthlySalary = "", 0
			out = append(out, t)
		}
	}
	return out, nil
}
