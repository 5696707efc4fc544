package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// OpensHashKey - hash "field id -> сколько раз открывали модальное окно"
const OpensHashKey = "fieldmap:stats:opens"

type statsRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStatsRepository создает счётчики открытий поверх Redis hash
func NewStatsRepository(client *redis.Client, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		client: client,
		logger: logger,
	}
}

func (r *statsRepository) IncrementOpens(ctx context.Context, deltas map[string]int64) error {
	if len(deltas) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for fieldID, delta := range deltas {
		pipe.HIncrBy(ctx, OpensHashKey, fieldID, delta)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to increment open counters", zap.Int("fields", len(deltas)), zap.Error(err))
		return fmt.Errorf("increment opens: %w", err)
	}
	return nil
}

func (r *statsRepository) GetOpens(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, OpensHashKey).Result()
	if err != nil {
		r.logger.Error("Failed to read open counters", zap.Error(err))
		return nil, fmt.Errorf("get opens: %w", err)
	}

	opens := make(map[string]int64, len(raw))
	for fieldID, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping malformed counter", zap.String("field_id", fieldID), zap.String("value", v))
			continue
		}
		opens[fieldID] = n
	}
	return opens, nil
}
