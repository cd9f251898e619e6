package database

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"aplus-academy/internal/models"
)

type contentTable struct {
	columns   []string
	published bool
}

// contentTables is the whitelist for the generic record operations. Table and
// column names are only ever taken from here, never from the caller.
var contentTables = map[string]contentTable{
	"courses": {published: true, columns: []string{
		"id", "name_uz", "name_ru", "name_en", "description_uz", "description_ru", "description_en",
		"category", "category_id", "teacher_id", "price", "duration", "level", "schedule",
		"image_url", "featured", "is_published", "created_at",
	}},
	"events": {published: true, columns: []string{
		"id", "title_uz", "title_ru", "title_en", "description_uz", "description_ru", "description_en",
		"date", "category", "image_url", "is_published", "created_at",
	}},
	"achievements": {published: true, columns: []string{
		"id", "title_uz", "title_ru", "title_en", "description_uz", "description_ru", "description_en",
		"student_name", "student_name_uz", "student_name_ru", "student_name_en", "course_id",
		"image_url", "is_published", "created_at",
	}},
	"testimonials": {published: true, columns: []string{
		"id", "name", "course", "rating", "text_uz", "text_ru", "text_en", "is_published", "created_at",
	}},
	"categories": {columns: []string{
		"id", "name_uz", "name_ru", "name_en", "type", "created_at",
	}},
	"schedule_entries": {published: true, columns: []string{
		"id", "title_uz", "title_ru", "title_en", "teacher_name", "day_of_week", "start_time",
		"end_time", "room", "format", "is_published", "created_at",
	}},
	"content_blocks": {columns: []string{
		"id", "section", "content_key", "locale", "value", "created_at",
	}},
	"applications": {columns: []string{
		"id", "full_name", "age", "phone", "course_id", "interests", "status", "locale", "created_at",
	}},
	"contact_messages": {columns: []string{
		"id", "name", "email", "message", "created_at",
	}},
}

// ContentTables lists the tables accepted by the record operations.
func ContentTables() []string {
	names := make([]string, 0, len(contentTables))
	for name := range contentTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPublishedFlag reports whether table carries an is_published column.
func HasPublishedFlag(table string) bool {
	return contentTables[table].published
}

func lookup(table string) (contentTable, error) {
	t, ok := contentTables[table]
	if !ok {
		return t, fmt.Errorf("%w: unknown table %q", models.ErrInvalidQuery, table)
	}
	return t, nil
}

func (t contentTable) has(column string) bool {
	for _, c := range t.columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t contentTable) check(columns ...string) error {
	for _, c := range columns {
		if !t.has(c) {
			return fmt.Errorf("%w: unknown column %q", models.ErrInvalidQuery, c)
		}
	}
	return nil
}

func whereClause(t contentTable, filters []models.Filter, args []any) (string, []any, error) {
	if len(filters) == 0 {
		return "", args, nil
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if err := t.check(f.Column); err != nil {
			return "", nil, err
		}
		args = append(args, f.Value)
		parts = append(parts, f.Column+" = $"+strconv.Itoa(len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildSelect(table string, q models.Query) (string, []any, error) {
	t, err := lookup(table)
	if err != nil {
		return "", nil, err
	}

	columns := q.Columns
	if len(columns) == 0 {
		columns = t.columns
	}
	if err := t.check(columns...); err != nil {
		return "", nil, err
	}

	where, args, err := whereClause(t, q.Filters, nil)
	if err != nil {
		return "", nil, err
	}

	order, desc := q.OrderBy, q.Desc
	if order == "" {
		order, desc = "created_at", true
	}
	if err := t.check(order); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT " + strings.Join(columns, ", ") + " FROM " + table + where + " ORDER BY " + order)
	if desc {
		b.WriteString(" DESC")
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}
	return b.String(), args, nil
}

func sortedKeys(rec models.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildInsert(table string, rec models.Record) (string, []any, error) {
	t, err := lookup(table)
	if err != nil {
		return "", nil, err
	}
	if len(rec) == 0 {
		return "", nil, fmt.Errorf("%w: empty record", models.ErrInvalidQuery)
	}

	keys := sortedKeys(rec)
	if err := t.check(keys...); err != nil {
		return "", nil, err
	}
	args := make([]any, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, rec[k])
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}

	query := "INSERT INTO " + table + " (" + strings.Join(keys, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") RETURNING " + strings.Join(t.columns, ", ")
	return query, args, nil
}

func buildUpdate(table, id string, rec models.Record) (string, []any, error) {
	t, err := lookup(table)
	if err != nil {
		return "", nil, err
	}

	keys := make([]string, 0, len(rec))
	for _, k := range sortedKeys(rec) {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", models.ErrInvalidQuery)
	}
	if err := t.check(keys...); err != nil {
		return "", nil, err
	}

	args := make([]any, 0, len(keys)+1)
	sets := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, rec[k])
		sets = append(sets, k+" = $"+strconv.Itoa(len(args)))
	}
	args = append(args, id)

	query := "UPDATE " + table + " SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + strings.Join(t.columns, ", ")
	return query, args, nil
}

// normalize turns driver byte slices (NUMERIC, for instance) into strings so
// records encode as JSON text.
func normalize(rec map[string]any) models.Record {
	for k, v := range rec {
		if b, ok := v.([]byte); ok {
			rec[k] = string(b)
		}
	}
	return rec
}

func scanRecords(rows *sqlx.Rows) ([]models.Record, error) {
	defer rows.Close()

	out := []models.Record{}
	for rows.Next() {
		rec := make(map[string]any)
		if err := rows.MapScan(rec); err != nil {
			return nil, err
		}
		out = append(out, normalize(rec))
	}
	return out, rows.Err()
}

func (db *DB) SelectRecords(ctx context.Context, table string, q models.Query) ([]models.Record, error) {
	query, args, err := buildSelect(table, q)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", table, classify(err))
	}
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	return recs, nil
}

func (db *DB) InsertRecord(ctx context.Context, table string, rec models.Record) (models.Record, error) {
	query, args, err := buildInsert(table, rec)
	if err != nil {
		return nil, err
	}
	return db.returning(ctx, "insert into "+table, query, args)
}

func (db *DB) UpdateRecord(ctx context.Context, table, id string, rec models.Record) (models.Record, error) {
	query, args, err := buildUpdate(table, id, rec)
	if err != nil {
		return nil, err
	}
	return db.returning(ctx, "update "+table, query, args)
}

func (db *DB) DeleteRecord(ctx context.Context, table, id string) error {
	if _, err := lookup(table); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, classify(err))
	}
	return affected(res, table)
}

func (db *DB) CountRecords(ctx context.Context, table string, filters []models.Filter) (int, error) {
	t, err := lookup(table)
	if err != nil {
		return 0, err
	}
	where, args, err := whereClause(t, filters, nil)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, classify(err))
	}
	return n, nil
}

func (db *DB) returning(ctx context.Context, op, query string, args []any) (models.Record, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, classify(err))
	}
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("failed to %s: %w", op, models.ErrNotFound)
	}
	return recs[0], nil
}
