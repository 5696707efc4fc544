package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sportsfield-microservice/internal/config"
	"github.com/sportsfield-microservice/internal/delivery/http/handler"
	"github.com/sportsfield-microservice/internal/delivery/http/middleware"
	"github.com/sportsfield-microservice/internal/metrics"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	fieldHandler   *handler.FieldHandler
	sessionHandler *handler.SessionHandler
	statsHandler   *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	fieldHandler *handler.FieldHandler,
	sessionHandler *handler.SessionHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Sports Field Map Service",
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		fieldHandler:   fieldHandler,
		sessionHandler: sessionHandler,
		statsHandler:   statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Map & fields
	api.Get("/map", s.fieldHandler.GetMapView)
	api.Get("/fields", s.fieldHandler.ListOverlays)
	api.Get("/fields/geojson", s.fieldHandler.GetGeoJSON)
	api.Get("/fields/:id", s.fieldHandler.GetField)
	api.Get("/fields/:id/summary", s.fieldHandler.GetSummary)
	api.Get("/fields/:id/details", s.fieldHandler.GetDetails)

	// Interaction sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.sessionHandler.Create)
	sessions.Delete("/:sid", s.sessionHandler.End)
	sessions.Get("/:sid/state", s.sessionHandler.GetState)
	sessions.Get("/:sid/fields", s.sessionHandler.ListOverlays)
	sessions.Post("/:sid/open/:id", s.sessionHandler.Open)
	sessions.Post("/:sid/close", s.sessionHandler.Close)
	sessions.Get("/:sid/modal", s.sessionHandler.GetModal)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
