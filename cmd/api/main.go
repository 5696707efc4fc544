package main

// @title Sports Field Map API
// @version 1.0.0
// @description Сервис карты спортивных полей. Отдаёт полигоны полей для слоя карты, содержимое popup и модального окна, а также ведёт состояние модального окна для каждой клиентской сессии.
// @description
// @description Основные возможности:
// @description - Полигоны полей в конвенции [lat, lng] или [lng, lat] и в GeoJSON
// @description - Краткая карточка поля (popup) и подробности (модальное окно)
// @description - Сессии взаимодействия: открыть/закрыть модальное окно, ETag для опроса
// @description - Статистика открытий по полям

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/sportsfield-microservice/docs"
	"github.com/sportsfield-microservice/internal/config"
	httpDelivery "github.com/sportsfield-microservice/internal/delivery/http"
	"github.com/sportsfield-microservice/internal/delivery/http/handler"
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/interaction"
	"github.com/sportsfield-microservice/internal/metrics"
	"github.com/sportsfield-microservice/internal/pkg/logger"
	"github.com/sportsfield-microservice/internal/repository/cache"
	"github.com/sportsfield-microservice/internal/repository/dataset"
	"github.com/sportsfield-microservice/internal/repository/memory"
	"github.com/sportsfield-microservice/internal/repository/postgres"
	redisRepo "github.com/sportsfield-microservice/internal/repository/redis"
	"github.com/sportsfield-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithService("fieldmap-api"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Sports Field Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Load dataset and build the store (fatal on invalid data)
	source, closeSource := datasetSource(cfg, log)
	records, err := source.Load(ctx)
	closeSource()
	if err != nil {
		log.Fatal("Failed to load field dataset", zap.String("source", source.Name()), zap.Error(err))
	}

	store, err := memory.NewFieldStore(records)
	if err != nil {
		log.Fatal("Field dataset is invalid", zap.Error(err))
	}
	log.Info("Field dataset loaded",
		zap.String("source", source.Name()),
		zap.Int("fields", store.Len()),
		zap.String("version", store.Version()))

	// 4. Connect to Redis (optional)
	var (
		cacheRepo repository.CacheRepository = cache.NewNopCacheRepository()
		publisher usecase.EventPublisher
		statsRepo repository.StatsRepository
		redisConn *cache.Redis
	)
	if cfg.Redis.Enabled {
		redisConn, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		if err := redisConn.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}

		cacheRepo = cache.NewCacheRepository(redisConn, store.Version())
		publisher = redisRepo.NewStreamRepository(redisConn.Client(), log)
		statsRepo = redisRepo.NewStatsRepository(redisConn.Client(), log)
		log.Info("Redis connected")
	}

	// 5. Initialize Use Cases
	projector, err := usecase.NewOverlayProjector(domain.RenderConvention(cfg.Map.Convention), cfg.Map.OverlayColor)
	if err != nil {
		log.Fatal("Invalid render convention", zap.Error(err))
	}

	registry := interaction.NewRegistry(store, cfg.Session.IdleTTL, log)
	metrics.RegisterSessionsGauge(registry.Len)

	fieldUC := usecase.NewFieldUseCase(
		store,
		cacheRepo,
		projector,
		usecase.MapSettings{
			TileURL:     cfg.Map.TileURL,
			Attribution: cfg.Map.TileAttribution,
			DefaultZoom: cfg.Map.DefaultZoom,
		},
		cfg.Cache.OverlayCacheTTL,
		log,
	)
	interactionUC := usecase.NewInteractionUseCase(registry, store, projector, publisher, log)
	statsUC := usecase.NewStatsUseCase(store, statsRepo, registry, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewFieldHandler(fieldUC, log),
		handler.NewSessionHandler(interactionUC, log),
		handler.NewStatsHandler(statsUC, log),
	)

	// 7. Idle session sweeper
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, cfg.Session.SweepInterval)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")
	stopSweep()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisConn != nil {
		if err := redisConn.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

// datasetSource выбирает загрузчик по DATASET_SOURCE; второй результат закрывает соединение
func datasetSource(cfg *config.Config, log *zap.Logger) (repository.DatasetSource, func()) {
	if cfg.Dataset.Source != config.DatasetSourcePostgres {
		return dataset.NewFileSource(cfg.Dataset.Path, log), func() {}
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	return postgres.NewFieldSource(db), func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
}
