package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aplus-academy/internal/models"
	"aplus-academy/internal/notify"
)

const (
	minApplicantAge = 10
	maxApplicantAge = 100

	applicationPending = "pending"
)

var ErrInvalidInput = errors.New("invalid input")

type RegistrationInput struct {
	FullName  string
	Age       int
	Phone     string
	CourseID  string
	Interests string
	Locale    string
}

func (in RegistrationInput) validate() error {
	var problems []string
	if strings.TrimSpace(in.FullName) == "" {
		problems = append(problems, "full name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		problems = append(problems, "phone is required")
	}
	if in.Age < minApplicantAge || in.Age > maxApplicantAge {
		problems = append(problems, fmt.Sprintf("age must be between %d and %d", minApplicantAge, maxApplicantAge))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// Register stores a pending application and notifies staff. The
// notification outcome never affects the result.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (models.Application, error) {
	if err := in.validate(); err != nil {
		return models.Application{}, err
	}

	app := models.Application{
		ID:        newID(),
		FullName:  strings.TrimSpace(in.FullName),
		Age:       in.Age,
		Phone:     strings.TrimSpace(in.Phone),
		CourseID:  sql.NullString{String: in.CourseID, Valid: in.CourseID != ""},
		Interests: sql.NullString{String: in.Interests, Valid: in.Interests != ""},
		Status:    applicationPending,
		Locale:    sql.NullString{String: in.Locale, Valid: in.Locale != ""},
		CreatedAt: s.now(),
	}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		s.log.Error("failed to store application", zap.Error(err))
		return models.Application{}, fmt.Errorf("failed to register: %w", err)
	}

	courseName := "-"
	if in.CourseID != "" {
		if c, err := s.store.GetCourse(ctx, in.CourseID); err == nil {
			courseName = c.NameUz
		} else {
			s.log.Warn("failed to resolve course for notification", zap.Error(err))
		}
	}
	s.notify(ctx, "register", notify.RegistrationMessage(notify.Registration{
		FullName:   app.FullName,
		Age:        app.Age,
		Phone:      app.Phone,
		CourseName: courseName,
	}, app.CreatedAt))

	return app, nil
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Contact stores a contact-form message and notifies staff.
func (s *Service) Contact(ctx context.Context, in ContactInput) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now(),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return models.ContactMessage{}, fmt.Errorf("%w: name, email and message are required", ErrInvalidInput)
	}
	if err := s.store.CreateContactMessage(ctx, msg); err != nil {
		s.log.Error("failed to store contact message", zap.Error(err))
		return models.ContactMessage{}, fmt.Errorf("failed to send message: %w", err)
	}

	s.notify(ctx, "contact", notify.ContactMessage(notify.Contact{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	}, msg.CreatedAt))

	return msg, nil
}
