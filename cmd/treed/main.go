package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/treed/internal/application/forest"
	"github.com/aescanero/treed/internal/config"
	memoryevents "github.com/aescanero/treed/pkg/adapters/events/memory"
	redisevents "github.com/aescanero/treed/pkg/adapters/events/redis"
	"github.com/aescanero/treed/pkg/adapters/metrics/prometheus"
	memorystorage "github.com/aescanero/treed/pkg/adapters/storage/memory"
	redisstorage "github.com/aescanero/treed/pkg/adapters/storage/redis"
	"github.com/aescanero/treed/pkg/api/grpc"
	"github.com/aescanero/treed/pkg/api/http"
	"github.com/aescanero/treed/pkg/api/websocket"
	"github.com/aescanero/treed/pkg/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting tree store",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Initialize Redis client when a redis backend is selected
	var redisClient *goredis.Client
	if cfg.NeedsRedis() {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Initialize adapters
	var storage ports.NodeStorage
	switch cfg.StorageBackend {
	case config.BackendRedis:
		storage = redisstorage.NewNodeStorage(redisClient, logger)
	default:
		storage = memorystorage.NewInMemoryNodeStorage()
	}

	var eventBus ports.EventBus
	switch cfg.EventsBackend {
	case config.BackendRedis:
		eventBus, err = redisevents.NewStreamsEventBus(
			redisClient,
			"treed-subscribers",
			fmt.Sprintf("treed-%d", os.Getpid()),
			logger,
		)
		if err != nil {
			logger.Fatal("failed to create event bus", zap.Error(err))
		}
	default:
		eventBus = memoryevents.NewInMemoryEventBus()
	}

	metricsCollector := prometheus.NewCollector()

	// Initialize application core
	manager := forest.NewManager(storage, eventBus, metricsCollector, logger)

	if err := manager.Restore(context.Background()); err != nil {
		logger.Fatal("failed to restore forest", zap.Error(err))
	}

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:    cfg.HTTPPort,
		Manager: manager,
		Logger:  logger,
	})

	// Add WebSocket handler to HTTP server
	wsHandler := websocket.NewHandler(eventBus, logger)
	httpServer.SetupWebSocket(wsHandler)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Port:    cfg.GRPCPort,
		Manager: manager,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to create gRPC server", zap.Error(err))
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	logger.Info("tree store started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.String("events_backend", cfg.EventsBackend),
		zap.Int("nodes", manager.Len()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	// Shutdown components
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if err := eventBus.Close(); err != nil {
		logger.Error("event bus close error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("tree store shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
