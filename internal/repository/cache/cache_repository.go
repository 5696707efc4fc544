package cache

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const keyPrefix = "fieldmap:"

type cacheRepository struct {
	client  *redis.Client
	logger  *zap.Logger
	version string
}

// NewCacheRepository создает кеш поверх Redis. version входит в ключи
// отрисованных слоев, чтобы смена набора данных не отдавала старый кеш.
func NewCacheRepository(redis *Redis, version string) repository.CacheRepository {
	return &cacheRepository{
		client:  redis.Client(),
		logger:  redis.logger,
		version: version,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, keyPrefix+key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetOverlays(ctx context.Context, convention domain.RenderConvention) ([]byte, error) {
	return r.Get(ctx, OverlaysKey(r.version, convention))
}

func (r *cacheRepository) SetOverlays(ctx context.Context, convention domain.RenderConvention, data []byte, ttl time.Duration) error {
	return r.Set(ctx, OverlaysKey(r.version, convention), data, ttl)
}

// OverlaysKey - ключ отрисованной коллекции полигонов
func OverlaysKey(version string, convention domain.RenderConvention) string {
	return fmt.Sprintf("overlays:%s:%s", version, convention)
}
