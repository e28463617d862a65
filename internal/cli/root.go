package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcadehub/arcade/internal/api"
	"github.com/arcadehub/arcade/internal/factory"
	redisstorage "github.com/arcadehub/arcade/internal/storage/redis"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "arcade",
		Short: "Real-time multiplayer arcade session engine",
		Long: `arcade runs the session engine for a small real-time arcade:
room lifecycle, elimination and connect-four matches against humans
or the built-in AI, player stats, and completed-game history.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Host, "host", cfg.Host, "Listen host (env: ARCADE_HOST)")
	rootCmd.PersistentFlags().IntVar(&cfg.Port, "port", cfg.Port, "Listen port (env: ARCADE_PORT)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: ARCADE_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL when --storage=redis (env: ARCADE_REDIS_URL)")
	rootCmd.PersistentFlags().IntVar(&cfg.SearchDepth, "search-depth", cfg.SearchDepth, "Connect-four AI lookahead depth, 0 for the default (env: ARCADE_SEARCH_DEPTH)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env: ARCADE_LOG_LEVEL)")

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the engine and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		SearchDepth: cfg.SearchDepth,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	// the dispatcher is the single consumer of the command queue
	go app.Dispatcher.Run(ctx)

	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Stats:   app.StatsService,
		Storage: app.Storage,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	server := api.NewServer(router, serverCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
