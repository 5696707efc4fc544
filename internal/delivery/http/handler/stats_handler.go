package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sportsfield-microservice/internal/pkg/logger"
	"github.com/sportsfield-microservice/internal/pkg/utils"
	"github.com/sportsfield-microservice/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Get system statistics
// @Description Размер набора данных, число живых сессий и счётчики открытий по полям
// @Tags Statistics
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Statistics}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext(), h.logger)
	start := time.Now()

	stats, err := h.statsUC.GetStatistics(c.UserContext())
	if err != nil {
		log.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{
		Total:    stats.Fields,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
