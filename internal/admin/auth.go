package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"aplus-academy/internal/models"
	"aplus-academy/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

// Authenticate checks a login/password pair against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, login, password string) (models.Admin, error) {
	admin, err := s.store.GetAdminByLogin(ctx, login)
	if errors.Is(err, models.ErrNotFound) {
		return models.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.log.Info("rejected admin login", zap.String(logger.FieldLogin, login))
		return models.Admin{}, ErrInvalidCredentials
	}
	admin.PasswordHash = ""
	return admin, nil
}

// EnsureAdmin creates the account, or resets its name and password.
func (s *Service) EnsureAdmin(ctx context.Context, login, name, password string) error {
	if login == "" || password == "" {
		return fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if name == "" {
		name = login
	}
	admin := models.Admin{ID: newID(), Login: login, Name: name, PasswordHash: string(hash)}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}
