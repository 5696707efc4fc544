package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sportsfield-microservice/internal/config"
	"github.com/sportsfield-microservice/internal/pkg/logger"
	"github.com/sportsfield-microservice/internal/repository/cache"
	redisRepo "github.com/sportsfield-microservice/internal/repository/redis"
	"github.com/sportsfield-microservice/internal/worker"
	"github.com/sportsfield-microservice/internal/worker/stats"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithService("fieldmap-worker"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Field Opens Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_batch", cfg.Worker.MaxBatch))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	statsRepo := redisRepo.NewStatsRepository(redisClient.Client(), log)

	// 5. Initialize workers
	opensWorker := stats.NewOpensWorker(
		streamRepo,
		statsRepo,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxBatch,
		log,
	)

	// 6. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	if cfg.Worker.ShutdownTimeout > 0 {
		workerManager.SetShutdownTimeout(cfg.Worker.ShutdownTimeout)
	}
	workerManager.Register(opensWorker)

	// 7. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Let the current batch finish and ack before cancelling blocked reads
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
