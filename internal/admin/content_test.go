package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aplus-academy/internal/models"
)

func TestContentRecords(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateRecord(ctx, "events", models.Record{"title_uz": "Ochiq dars", "is_published": true})
	require.NoError(t, err)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	_, err = svc.CreateRecord(ctx, "events", models.Record{"title_uz": "Qoralama", "is_published": false})
	require.NoError(t, err)

	published, err := svc.ListPublished(ctx, "events")
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Ochiq dars", published[0]["title_uz"])

	n, err := svc.CountRecords(ctx, "events", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	updated, err := svc.UpdateRecord(ctx, "events", id, models.Record{"title_uz": "Master klass"})
	require.NoError(t, err)
	assert.Equal(t, "Master klass", updated["title_uz"])

	require.NoError(t, svc.DeleteRecord(ctx, "events", id))
	assert.ErrorIs(t, svc.DeleteRecord(ctx, "events", id), models.ErrNotFound)
}

func TestListPublished_PrivateTable(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ListPublished(context.Background(), "applications")
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
}

func TestListRecords_MissingTable(t *testing.T) {
	svc, db := newService(t)
	db.Fail("SelectRecords", models.ErrTableNotFound)
	db.Fail("CountRecords", models.ErrTableNotFound)

	recs, err := svc.ListRecords(context.Background(), "achievements", models.Query{})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	n, err := svc.CountRecords(context.Background(), "achievements", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContentBlocks(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for _, rec := range []models.Record{
		{"section": "hero", "content_key": "title", "locale": "uz", "value": "A+ Akademiya"},
		{"section": "hero", "content_key": "title", "locale": "ru", "value": "A+ Академия"},
		{"section": "about", "content_key": "title", "locale": "uz", "value": "Biz haqimizda"},
	} {
		_, err := svc.CreateRecord(ctx, "content_blocks", rec)
		require.NoError(t, err)
	}

	blocks, err := svc.ContentBlocks(ctx, "hero", "uz")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "A+ Akademiya"}, blocks)
}

func TestPublicTeachers(t *testing.T) {
	svc, db := newService(t)
	seedTeacher(t, db, models.TeacherProfile{ID: "t1", FullName: "Active", Phone: "+998", MonthlySalary: 100, Status: models.TeacherActive})
	seedTeacher(t, db, models.TeacherProfile{ID: "t2", FullName: "Gone", Status: models.TeacherInactive})

	teachers, err := svc.PublicTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Active", teachers[0].FullName)
	assert.Empty(t, teachers[0].Phone)
	assert.Zero(t, teachers[0].MonthlySalary)
}
