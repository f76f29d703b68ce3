package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mcoot/mergington-activities/internal/api"
	"github.com/mcoot/mergington-activities/internal/config"
	"github.com/mcoot/mergington-activities/internal/factory"
	"github.com/mcoot/mergington-activities/internal/storage"
	redisstorage "github.com/mcoot/mergington-activities/internal/storage/redis"
	"github.com/mcoot/mergington-activities/internal/web"
)

func main() {
	cfg := config.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		TeachersPath: cfg.TeachersFile,
		Logger:       logger,
		StorageType:  cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == storage.TypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Seed activities; malformed seed data is fatal
	if err := app.SeedFromFile(context.Background(), cfg.ActivitiesFile); err != nil {
		logger.Error("failed to seed activities",
			slog.String("file", cfg.ActivitiesFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Find static files directory
	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		RegistryService: app.RegistryService,
		StaticDir:       staticDir,
	})

	// Create API router; it hands every path it does not own to the web router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
		AllowedOrigins:  cfg.AllowedOrigins,
		Web:             webRouter,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.HTTPHost
	serverConfig.Port = cfg.HTTPPort
	serverConfig.ShutdownTimeout = cfg.ShutdownTimeout
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving activities",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageType),
		slog.Int("teachers", app.AuthService.TeacherCount()))

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// findStaticDir looks for an on-disk static files directory.
// Returns "" to fall back to the embedded assets.
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
