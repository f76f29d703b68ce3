package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	activities map[string]*model.Activity
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		activities: make(map[string]*model.Activity),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Seeding

// SaveActivities replaces the stored activities with copies of the given ones
func (s *Storage) SaveActivities(ctx context.Context, activities []*model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = make(map[string]*model.Activity, len(activities))
	for _, a := range activities {
		s.activities[a.Name] = a.Clone()
	}
	return nil
}

func (s *Storage) HasActivities(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities) > 0, nil
}

// Reads

func (s *Storage) ListActivities(ctx context.Context) ([]*model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		result = append(result, a.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *Storage) GetActivity(ctx context.Context, name string) (*model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return nil, model.ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Participant mutations

func (s *Storage) AddParticipant(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return model.ErrActivityNotFound
	}
	return a.AddParticipant(email)
}

func (s *Storage) RemoveParticipant(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return model.ErrActivityNotFound
	}
	return a.RemoveParticipant(email)
}
