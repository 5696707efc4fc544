package repository

import (
	"context"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу (nil, nil при промахе)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetOverlays получает отрисованную коллекцию полигонов
	GetOverlays(ctx context.Context, convention domain.RenderConvention) ([]byte, error)

	// SetOverlays сохраняет отрисованную коллекцию полигонов
	SetOverlays(ctx context.Context, convention domain.RenderConvention, data []byte, ttl time.Duration) error
}
