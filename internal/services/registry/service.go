// Package registry implements the activity registry: listing activities and
// signing students up or out through either the teacher-gated path or the
// open path. Both paths apply identical mutation rules.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/mergington-activities/internal/dependencies/clock"
	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/observability"
	"github.com/mcoot/mergington-activities/internal/services/auth"
	"github.com/mcoot/mergington-activities/internal/storage"
)

// ErrEmailRequired is returned when a mutation names no student
var ErrEmailRequired = errors.New("email is required")

// Path identifies which authorization path a mutation came through
type Path string

const (
	PathTeacher Path = "teacher"
	PathOpen    Path = "open"
)

const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Service owns every read and write of activity participants
type Service struct {
	storage storage.Storage
	auth    *auth.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, authService *auth.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		auth:    authService,
		clock:   clock,
		logger:  logger,
	}
}

// Seed loads the startup activities.
// With onlyIfEmpty set, existing stored activities are left untouched.
func (s *Service) Seed(ctx context.Context, activities []*model.Activity, onlyIfEmpty bool) (bool, error) {
	if onlyIfEmpty {
		has, err := s.storage.HasActivities(ctx)
		if err != nil {
			return false, fmt.Errorf("check existing activities: %w", err)
		}
		if has {
			s.logger.InfoContext(ctx, "activities already present, skipping seed")
			return false, nil
		}
	}

	if err := s.storage.SaveActivities(ctx, activities); err != nil {
		return false, fmt.Errorf("save activities: %w", err)
	}
	s.logger.InfoContext(ctx, "activities seeded", slog.Int("count", len(activities)))
	return true, nil
}

// List returns every activity with its current participants, sorted by name
func (s *Service) List(ctx context.Context) ([]*model.Activity, error) {
	return s.storage.ListActivities(ctx)
}

// Get returns a single activity
func (s *Service) Get(ctx context.Context, name string) (*model.Activity, error) {
	return s.storage.GetActivity(ctx, name)
}

// Signup adds a student without any authorization
func (s *Service) Signup(ctx context.Context, activity, email string) (string, error) {
	if err := s.signup(ctx, PathOpen, activity, email); err != nil {
		return "", err
	}
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes a student without any authorization
func (s *Service) Unregister(ctx context.Context, activity, email string) (string, error) {
	if err := s.unregister(ctx, PathOpen, activity, email); err != nil {
		return "", err
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

// RegisterStudent adds a student on a teacher's behalf.
// The credential check runs before any activity or membership check.
func (s *Service) RegisterStudent(ctx context.Context, username, password, activity, email string) (string, error) {
	if err := s.auth.Authorize(ctx, username, password); err != nil {
		s.record(ctx, opSignup, PathTeacher, activity, email, err)
		return "", err
	}
	if err := s.signup(ctx, PathTeacher, activity, email); err != nil {
		return "", err
	}
	return fmt.Sprintf("Student %s registered successfully for %s", email, activity), nil
}

// UnregisterStudent removes a student on a teacher's behalf.
// The credential check runs before any activity or membership check.
func (s *Service) UnregisterStudent(ctx context.Context, username, password, activity, email string) (string, error) {
	if err := s.auth.Authorize(ctx, username, password); err != nil {
		s.record(ctx, opUnregister, PathTeacher, activity, email, err)
		return "", err
	}
	if err := s.unregister(ctx, PathTeacher, activity, email); err != nil {
		return "", err
	}
	return fmt.Sprintf("Student %s unregistered successfully from %s", email, activity), nil
}

func (s *Service) signup(ctx context.Context, path Path, activity, email string) error {
	err := s.requireEmail(ctx, activity, email)
	if err == nil {
		err = s.storage.AddParticipant(ctx, activity, email)
	}
	s.record(ctx, opSignup, path, activity, email, err)
	return err
}

func (s *Service) unregister(ctx context.Context, path Path, activity, email string) error {
	err := s.requireEmail(ctx, activity, email)
	if err == nil {
		err = s.storage.RemoveParticipant(ctx, activity, email)
	}
	s.record(ctx, opUnregister, path, activity, email, err)
	return err
}

// requireEmail rejects an empty email, but only for an activity that exists:
// an unknown activity always reports ErrActivityNotFound.
func (s *Service) requireEmail(ctx context.Context, activity, email string) error {
	if email != "" {
		return nil
	}
	if _, err := s.storage.GetActivity(ctx, activity); err != nil {
		return err
	}
	return ErrEmailRequired
}

// record logs and counts the outcome of a mutation attempt
func (s *Service) record(ctx context.Context, op string, path Path, activity, email string, err error) {
	outcome := outcomeOf(err)
	observability.RecordRegistryMutation(op, string(path), outcome)

	attrs := []any{
		slog.String("operation", op),
		slog.String("path", string(path)),
		slog.String("activity", activity),
		slog.String("email", email),
	}

	switch outcome {
	case "success":
		observability.RecordLastMutation(s.clock.Now())
		s.logger.InfoContext(ctx, "participants changed", attrs...)
	case "error":
		s.logger.ErrorContext(ctx, "participant change failed", append(attrs, slog.String("error", err.Error()))...)
	default:
		s.logger.DebugContext(ctx, "participant change rejected", append(attrs, slog.String("outcome", outcome))...)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, auth.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, model.ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, model.ErrAlreadySignedUp), errors.Is(err, model.ErrNotSignedUp):
		return "conflict"
	case errors.Is(err, ErrEmailRequired):
		return "invalid"
	default:
		return "error"
	}
}
