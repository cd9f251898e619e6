package admin_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aplus-academy/internal/admin"
	"aplus-academy/internal/models"
)

func TestRegister(t *testing.T) {
	rec := &recorder{}
	svc, db := newService(t, admin.WithNotifier(rec))
	db.AddCourse(models.Course{ID: "c1", NameUz: "Ingliz tili", IsPublished: true})

	app, err := svc.Register(context.Background(), admin.RegistrationInput{
		FullName: "  Dilnoza <Rahimova> ",
		Age:      16,
		Phone:    "+998 90 123 45 67",
		CourseID: "c1",
		Locale:   "uz",
	})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "pending", app.Status)
	assert.Equal(t, testNow, app.CreatedAt)
	assert.Equal(t, sql.NullString{String: "c1", Valid: true}, app.CourseID)
	require.Len(t, db.Applications(), 1)

	sent := rec.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Dilnoza &lt;Rahimova&gt;")
	assert.Contains(t, sent[0], "Ingliz tili")
	assert.Contains(t, sent[0], "15.10.2026 12:00")
}

func TestRegister_Invalid(t *testing.T) {
	rec := &recorder{}
	svc, db := newService(t, admin.WithNotifier(rec))

	tests := []struct {
		name string
		in   admin.RegistrationInput
	}{
		{"too young", admin.RegistrationInput{FullName: "A", Phone: "1", Age: 9}},
		{"too old", admin.RegistrationInput{FullName: "A", Phone: "1", Age: 101}},
		{"no name", admin.RegistrationInput{FullName: " ", Phone: "1", Age: 20}},
		{"no phone", admin.RegistrationInput{FullName: "A", Age: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, admin.ErrInvalidInput)
		})
	}
	svc.Wait()
	assert.Empty(t, db.Applications())
	assert.Empty(t, rec.sent())
}

func TestRegister_NotificationFailureIgnored(t *testing.T) {
	rec := &recorder{err: errBoom}
	svc, db := newService(t, admin.WithNotifier(rec))

	_, err := svc.Register(context.Background(), admin.RegistrationInput{FullName: "A", Phone: "1", Age: 30, CourseID: "unknown"})
	require.NoError(t, err)
	svc.Wait()

	require.Len(t, rec.sent(), 1)
	assert.Contains(t, rec.sent()[0], "-")
	assert.Len(t, db.Applications(), 1)
}

func TestRegister_StoreFailureSkipsNotification(t *testing.T) {
	rec := &recorder{}
	svc, db := newService(t, admin.WithNotifier(rec))
	db.Fail("CreateApplication", errBoom)

	_, err := svc.Register(context.Background(), admin.RegistrationInput{FullName: "A", Phone: "1", Age: 30})
	require.ErrorIs(t, err, errBoom)
	svc.Wait()
	assert.Empty(t, rec.sent())
}

func TestContact(t *testing.T) {
	rec := &recorder{}
	svc, db := newService(t, admin.WithNotifier(rec))
	ctx := context.Background()

	_, err := svc.Contact(ctx, admin.ContactInput{Name: "Jasur", Message: "Salom"})
	require.ErrorIs(t, err, admin.ErrInvalidInput)

	msg, err := svc.Contact(ctx, admin.ContactInput{Name: "Jasur", Email: "jasur@example.com", Message: "Salom"})
	require.NoError(t, err)
	svc.Wait()

	assert.NotEmpty(t, msg.ID)
	require.Len(t, db.ContactMessages(), 1)
	require.Len(t, rec.sent(), 1)
	assert.Contains(t, rec.sent()[0], "jasur@example.com")
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "", "s3cret"))

	a, err := svc.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Login)
	assert.Equal(t, "admin", a.Name)
	assert.Empty(t, a.PasswordHash)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "Owner", "rotated"))
	_, err = svc.Authenticate(ctx, "admin", "s3cret")
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
	a, err = svc.Authenticate(ctx, "admin", "rotated")
	require.NoError(t, err)
	assert.Equal(t, "Owner", a.Name)

	assert.ErrorIs(t, svc.EnsureAdmin(ctx, "", "", "x"), admin.ErrInvalidInput)
}
