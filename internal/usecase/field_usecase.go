package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/usecase/dto"
	"github.com/sportsfield-microservice/internal/view"
	"go.uber.org/zap"
)

// MapSettings - параметры слоя тайлов и начального вида карты
type MapSettings struct {
	TileURL     string
	Attribution string
	DefaultZoom int
}

// FieldUseCase отдаёт полигоны, карточки полей и начальный вид карты
type FieldUseCase struct {
	fieldRepo repository.FieldRepository
	cacheRepo repository.CacheRepository
	projector *OverlayProjector
	mapCfg    MapSettings
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewFieldUseCase создает новый экземпляр FieldUseCase
func NewFieldUseCase(
	fieldRepo repository.FieldRepository,
	cacheRepo repository.CacheRepository,
	projector *OverlayProjector,
	mapCfg MapSettings,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *FieldUseCase {
	return &FieldUseCase{
		fieldRepo: fieldRepo,
		cacheRepo: cacheRepo,
		projector: projector,
		mapCfg:    mapCfg,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ListOverlays - полигоны всех полей без обработчика клика
func (uc *FieldUseCase) ListOverlays(convention string) (*dto.OverlaysResponse, error) {
	conv, err := uc.projector.Convention(convention)
	if err != nil {
		return nil, err
	}

	return &dto.OverlaysResponse{
		Convention: conv,
		Overlays:   uc.projector.ProjectAll(uc.fieldRepo.All(), conv, nil),
	}, nil
}

// GetGeoJSON возвращает GeoJSON-коллекцию, используя кеш когда возможно
func (uc *FieldUseCase) GetGeoJSON(ctx context.Context) ([]byte, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetOverlays(ctx, domain.ConventionLngLat)
	if err == nil && cached != nil {
		uc.logger.Debug("Overlay collection fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get overlays from cache", zap.Error(err))
	}

	// 2. Рисуем из хранилища
	data, err := json.Marshal(uc.projector.FeatureCollection(uc.fieldRepo.All()))
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetOverlays(ctx, domain.ConventionLngLat, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache overlays", zap.Error(err))
	}

	return data, nil
}

// GetField возвращает запись поля как есть
func (uc *FieldUseCase) GetField(id string) (domain.FieldRecord, error) {
	return uc.fieldRepo.Get(id)
}

// GetSummary - содержимое popup поля
func (uc *FieldUseCase) GetSummary(id string) (domain.SummaryView, error) {
	record, err := uc.fieldRepo.Get(id)
	if err != nil {
		return domain.SummaryView{}, err
	}
	return view.Summary(record), nil
}

// GetDetails - содержимое модального окна поля без привязки к сессии
func (uc *FieldUseCase) GetDetails(id string) (domain.ExtendedView, error) {
	record, err := uc.fieldRepo.Get(id)
	if err != nil {
		return domain.ExtendedView{}, err
	}
	return view.Extended(record), nil
}

// GetMapView - границы всех полей и параметры слоя тайлов
func (uc *FieldUseCase) GetMapView() dto.MapViewResponse {
	bounds := uc.fieldRepo.Bounds()

	return dto.MapViewResponse{
		Bounds:      bounds,
		Center:      bounds.Center(),
		Zoom:        uc.mapCfg.DefaultZoom,
		TileURL:     uc.mapCfg.TileURL,
		Attribution: uc.mapCfg.Attribution,
		Convention:  string(uc.projector.convention),
	}
}
