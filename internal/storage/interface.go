package storage

import (
	"context"

	"github.com/mcoot/mergington-activities/internal/model"
)

// Backend names accepted by STORAGE_TYPE
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Storage defines the interface for activity persistence.
// AddParticipant and RemoveParticipant check and mutate atomically: concurrent
// callers never lose an update or observe a half-applied change.
type Storage interface {
	// Seeding
	SaveActivities(ctx context.Context, activities []*model.Activity) error
	HasActivities(ctx context.Context) (bool, error)

	// Reads
	ListActivities(ctx context.Context) ([]*model.Activity, error)
	GetActivity(ctx context.Context, name string) (*model.Activity, error)

	// Participant mutations
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
}
