package cache

import (
	"context"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
)

// nopCache используется, когда Redis выключен: всегда промах
type nopCache struct{}

func NewNopCacheRepository() repository.CacheRepository {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (nopCache) Delete(context.Context, string) error { return nil }

func (nopCache) GetOverlays(context.Context, domain.RenderConvention) ([]byte, error) {
	return nil, nil
}

func (nopCache) SetOverlays(context.Context, domain.RenderConvention, []byte, time.Duration) error {
	return nil
}
