package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/mergington-activities/internal/dependencies/clock"
	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/seed"
	"github.com/mcoot/mergington-activities/internal/services/auth"
	"github.com/mcoot/mergington-activities/internal/services/registry"
	"github.com/mcoot/mergington-activities/internal/storage"
	"github.com/mcoot/mergington-activities/internal/storage/memory"
	redisstorage "github.com/mcoot/mergington-activities/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService     *auth.Service
	RegistryService *registry.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// TeachersPath is the path to the teacher credentials document.
	// Ignored when Teachers is set.
	TeachersPath string
	// Teachers supplies credentials directly (optional)
	Teachers []model.Credential
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired.
// Activities are seeded separately with SeedFromFile or SeedActivities.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	teachers := cfg.Teachers
	if teachers == nil && cfg.TeachersPath != "" {
		loaded, err := seed.LoadTeachersFile(cfg.TeachersPath)
		if err != nil {
			return nil, err
		}
		teachers = loaded
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = storage.TypeMemory
	}

	switch storageType {
	case storage.TypeMemory:
		store = memory.New()
	case storage.TypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app := newWithDependencies(store, clock.New(), teachers, logger)
	app.StorageType = storageType
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, teachers []model.Credential, logger *slog.Logger) *App {
	authService := auth.New(teachers, logger)
	registryService := registry.New(store, authService, clk, logger)

	return &App{
		Storage:         store,
		StorageType:     storage.TypeMemory,
		Clock:           clk,
		AuthService:     authService,
		RegistryService: registryService,
		logger:          logger,
	}
}

// SeedFromFile loads the activities document and seeds storage with it
func (a *App) SeedFromFile(ctx context.Context, path string) error {
	activities, err := seed.LoadActivitiesFile(path)
	if err != nil {
		return err
	}
	return a.SeedActivities(ctx, activities)
}

// SeedActivities seeds storage. A persistent backend keeps what it already holds.
func (a *App) SeedActivities(ctx context.Context, activities []*model.Activity) error {
	onlyIfEmpty := a.StorageType == storage.TypeRedis
	if _, err := a.RegistryService.Seed(ctx, activities, onlyIfEmpty); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	return nil
}

// Close releases storage resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
