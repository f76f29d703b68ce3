package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/mergington-activities/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Service is the teacher credential store.
// It is built once from the seed data and never mutated, so it needs no locking.
type Service struct {
	credentials map[string]model.Credential
	logger      *slog.Logger
}

// New creates a new AuthService over the given teacher credentials
func New(credentials []model.Credential, logger *slog.Logger) *Service {
	byUsername := make(map[string]model.Credential, len(credentials))
	for _, c := range credentials {
		byUsername[c.Username] = c
	}
	return &Service{
		credentials: byUsername,
		logger:      logger,
	}
}

// Validate reports whether a stored credential matches username and password exactly.
// Plaintext records are compared verbatim; this is not a hardened credential scheme.
func (s *Service) Validate(username, password string) bool {
	cred, ok := s.credentials[username]
	if !ok {
		return false
	}

	if cred.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) == 1
}

// Authorize gates teacher-only operations.
// Returns ErrUnauthorized when the credentials do not validate.
func (s *Service) Authorize(ctx context.Context, username, password string) error {
	if !s.Validate(username, password) {
		s.logger.WarnContext(ctx, "teacher authorization rejected", slog.String("username", username))
		return ErrUnauthorized
	}
	return nil
}

// Login checks a teacher's credentials.
// Returns ErrInvalidCredentials when they do not validate.
func (s *Service) Login(ctx context.Context, username, password string) error {
	if !s.Validate(username, password) {
		s.logger.WarnContext(ctx, "teacher login failed", slog.String("username", username))
		return ErrInvalidCredentials
	}
	s.logger.InfoContext(ctx, "teacher logged in", slog.String("username", username))
	return nil
}

// TeacherCount returns the number of registered teachers
func (s *Service) TeacherCount() int {
	return len(s.credentials)
}
