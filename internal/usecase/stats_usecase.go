package usecase

import (
	"context"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// SessionCounter - источник количества живых сессий
type SessionCounter interface {
	Len() int
}

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	fieldRepo repository.FieldRepository
	statsRepo repository.StatsRepository
	sessions  SessionCounter
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
// statsRepo может быть nil, если Redis выключен.
func NewStatsUseCase(
	fieldRepo repository.FieldRepository,
	statsRepo repository.StatsRepository,
	sessions SessionCounter,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		fieldRepo: fieldRepo,
		statsRepo: statsRepo,
		sessions:  sessions,
		logger:    logger,
	}
}

// GetStatistics считает набор данных и добавляет счётчики открытий из Redis
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		Fields:      uc.fieldRepo.Len(),
		GeneratedAt: time.Now().UTC(),
	}

	for _, r := range uc.fieldRepo.All() {
		stats.Rings += len(r.Geometry)
		for _, ring := range r.Geometry {
			stats.Points += len(ring)
		}
		stats.Images += len(r.Images)
		stats.Clubs += len(r.Clubs)
		stats.Instructors += len(r.Instructors)
	}

	if uc.sessions != nil {
		stats.ActiveSessions = uc.sessions.Len()
	}

	if uc.statsRepo == nil {
		return stats, nil
	}

	opens, err := uc.statsRepo.GetOpens(ctx)
	if err != nil {
		// Счётчики вторичны, отдаём статистику набора данных
		uc.logger.Warn("Failed to get open counters", zap.Error(err))
		return stats, nil
	}
	stats.Opens = opens

	return stats, nil
}
