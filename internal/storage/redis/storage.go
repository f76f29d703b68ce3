package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/storage"
)

// ErrTooManyRetries is returned when a participant mutation keeps losing the optimistic lock
var ErrTooManyRetries = errors.New("redis transaction retries exhausted")

// activityRecord is the stored form of an activity, without its participants
type activityRecord struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`
	Category        string `json:"category,omitempty"`
}

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.MaxTxRetries <= 0 {
		cfg.MaxTxRetries = DefaultConfig().MaxTxRetries
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Seeding

// SaveActivities replaces every stored activity and its participants in one transaction
func (s *Storage) SaveActivities(ctx context.Context, activities []*model.Activity) error {
	existing, err := s.client.SMembers(ctx, activitiesIndexKey()).Result()
	if err != nil {
		return fmt.Errorf("read activity index: %w", err)
	}

	records := make([][]byte, len(activities))
	for i, a := range activities {
		data, err := json.Marshal(activityRecord{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Category:        a.Category,
		})
		if err != nil {
			return err
		}
		records[i] = data
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range existing {
			pipe.Del(ctx, activityKey(name), participantsKey(name))
		}
		pipe.Del(ctx, activitiesIndexKey())

		for i, a := range activities {
			pipe.Set(ctx, activityKey(a.Name), records[i], 0) // No TTL
			if len(a.Participants) > 0 {
				members := make([]interface{}, len(a.Participants))
				for j, email := range a.Participants {
					members[j] = email
				}
				pipe.RPush(ctx, participantsKey(a.Name), members...)
			}
			pipe.SAdd(ctx, activitiesIndexKey(), a.Name)
		}
		return nil
	})
	return err
}

func (s *Storage) HasActivities(ctx context.Context) (bool, error) {
	n, err := s.client.SCard(ctx, activitiesIndexKey()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Reads

func (s *Storage) ListActivities(ctx context.Context) ([]*model.Activity, error) {
	names, err := s.client.SMembers(ctx, activitiesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []*model.Activity{}, nil
	}

	// Read every record and participant list in one MULTI so the snapshot is consistent
	gets := make([]*redis.StringCmd, len(names))
	ranges := make([]*redis.StringSliceCmd, len(names))
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, name := range names {
			gets[i] = pipe.Get(ctx, activityKey(name))
			ranges[i] = pipe.LRange(ctx, participantsKey(name), 0, -1)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	activities := make([]*model.Activity, 0, len(names))
	for i := range names {
		activity, err := decodeActivity(gets[i], ranges[i])
		if err != nil {
			if errors.Is(err, model.ErrActivityNotFound) {
				continue // Index entry without a record
			}
			return nil, err
		}
		activities = append(activities, activity)
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Name < activities[j].Name
	})
	return activities, nil
}

func (s *Storage) GetActivity(ctx context.Context, name string) (*model.Activity, error) {
	var get *redis.StringCmd
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, activityKey(name))
		lrange = pipe.LRange(ctx, participantsKey(name), 0, -1)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return decodeActivity(get, lrange)
}

func decodeActivity(get *redis.StringCmd, lrange *redis.StringSliceCmd) (*model.Activity, error) {
	data, err := get.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrActivityNotFound
		}
		return nil, err
	}

	var rec activityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode activity record: %w", err)
	}

	participants, err := lrange.Result()
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []string{}
	}

	return &model.Activity{
		Name:            rec.Name,
		Description:     rec.Description,
		Schedule:        rec.Schedule,
		MaxParticipants: rec.MaxParticipants,
		Category:        rec.Category,
		Participants:    participants,
	}, nil
}

// Participant mutations

func (s *Storage) AddParticipant(ctx context.Context, name, email string) error {
	return s.mutateParticipants(ctx, name, func(participants []string) (func(redis.Pipeliner) error, error) {
		if slices.Contains(participants, email) {
			return nil, model.ErrAlreadySignedUp
		}
		return func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, participantsKey(name), email)
			return nil
		}, nil
	})
}

func (s *Storage) RemoveParticipant(ctx context.Context, name, email string) error {
	return s.mutateParticipants(ctx, name, func(participants []string) (func(redis.Pipeliner) error, error) {
		if !slices.Contains(participants, email) {
			return nil, model.ErrNotSignedUp
		}
		return func(pipe redis.Pipeliner) error {
			pipe.LRem(ctx, participantsKey(name), 1, email)
			return nil
		}, nil
	})
}

// participantCheck inspects the current participants and returns the queued write,
// or a domain error to abort without writing
type participantCheck func(participants []string) (func(redis.Pipeliner) error, error)

// mutateParticipants runs check-then-write under WATCH so a concurrent change
// to the same activity aborts and retries the whole operation
func (s *Storage) mutateParticipants(ctx context.Context, name string, check participantCheck) error {
	aKey := activityKey(name)
	pKey := participantsKey(name)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, aKey).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return model.ErrActivityNotFound
		}

		participants, err := tx.LRange(ctx, pKey, 0, -1).Result()
		if err != nil {
			return err
		}

		write, err := check(participants)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, write)
		return err
	}

	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, aKey, pKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue // Lost the optimistic lock, retry
		}
		return err
	}
	return ErrTooManyRetries
}
