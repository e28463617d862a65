package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arcadehub/arcade/internal/dependencies/clock"
	"github.com/arcadehub/arcade/internal/dependencies/random"
	"github.com/arcadehub/arcade/internal/dispatch"
	"github.com/arcadehub/arcade/internal/push"
	"github.com/arcadehub/arcade/internal/services/bot"
	"github.com/arcadehub/arcade/internal/services/match"
	"github.com/arcadehub/arcade/internal/services/registry"
	"github.com/arcadehub/arcade/internal/services/stats"
	"github.com/arcadehub/arcade/internal/storage"
	"github.com/arcadehub/arcade/internal/storage/memory"
	redisstorage "github.com/arcadehub/arcade/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry        *registry.Controller
	StatsService    *stats.Service
	MatchController *match.Controller
	Hub             *push.Hub
	Dispatcher      *dispatch.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SearchDepth is the connect-four AI lookahead depth
	// If zero, defaults to bot.DefaultDepth
	SearchDepth int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
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

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.SearchDepth, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, searchDepth int, logger *slog.Logger) *App {
	reg := registry.NewController(clk, logger)
	statsService := stats.New(store, clk, logger)
	symbols := bot.NewRandomSymbolStrategy(rnd)
	columns := bot.NewMinimaxStrategy(rnd, searchDepth)
	matchController := match.NewController(reg, statsService, store, symbols, columns, clk, logger)
	hub := push.NewHub(logger)
	dispatcher := dispatch.New(reg, matchController, statsService, hub, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Registry:        reg,
		StatsService:    statsService,
		MatchController: matchController,
		Hub:             hub,
		Dispatcher:      dispatcher,
	}
}
