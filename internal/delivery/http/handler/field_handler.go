package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sportsfield-microservice/internal/pkg/utils"
	"github.com/sportsfield-microservice/internal/pkg/validator"
	"github.com/sportsfield-microservice/internal/usecase"
	"github.com/sportsfield-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// FieldHandler - обработчик полигонов и карточек полей
type FieldHandler struct {
	fieldUC *usecase.FieldUseCase
	logger  *zap.Logger
}

// NewFieldHandler - создание нового FieldHandler
func NewFieldHandler(fieldUC *usecase.FieldUseCase, logger *zap.Logger) *FieldHandler {
	return &FieldHandler{
		fieldUC: fieldUC,
		logger:  logger,
	}
}

// ListOverlays godoc
// @Summary Полигоны всех полей
// @Description Возвращает по одному полигону на поле в порядке набора данных. Порядок контуров и точек сохраняется, оси переставляются под конвенцию.
// @Tags Fields
// @Produce json
// @Param convention query string false "Порядок осей (latlng, lnglat)"
// @Success 200 {object} utils.SuccessResponse{data=dto.OverlaysResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/fields [get]
func (h *FieldHandler) ListOverlays(c *fiber.Ctx) error {
	var q dto.OverlayQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	result, err := h.fieldUC.ListOverlays(q.Convention)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Overlays),
	})
}

// GetGeoJSON godoc
// @Summary Полигоны полей в GeoJSON
// @Description FeatureCollection из Polygon, координаты [lng, lat]. Ответ кешируется в Redis.
// @Tags Fields
// @Produce json
// @Success 200 {object} dto.FeatureCollection
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/fields/geojson [get]
func (h *FieldHandler) GetGeoJSON(c *fiber.Ctx) error {
	data, err := h.fieldUC.GetGeoJSON(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to render overlays", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

// GetField godoc
// @Summary Запись поля
// @Tags Fields
// @Produce json
// @Param id path string true "ID поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.FieldRecord}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/fields/{id} [get]
func (h *FieldHandler) GetField(c *fiber.Ctx) error {
	record, err := h.fieldUC.GetField(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, record, nil)
}

// GetSummary godoc
// @Summary Содержимое popup поля
// @Description Название, короткое и длинное описание, главное фото (или null) и инструкторы
// @Tags Fields
// @Produce json
// @Param id path string true "ID поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.SummaryView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/fields/{id}/summary [get]
func (h *FieldHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.fieldUC.GetSummary(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, summary, nil)
}

// GetDetails godoc
// @Summary Подробности поля
// @Description Разделы описания, таблицы клубов и возрастного охвата, галерея
// @Tags Fields
// @Produce json
// @Param id path string true "ID поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.ExtendedView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/fields/{id}/details [get]
func (h *FieldHandler) GetDetails(c *fiber.Ctx) error {
	details, err := h.fieldUC.GetDetails(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, details, nil)
}

// GetMapView godoc
// @Summary Начальный вид карты
// @Description Границы всех полей, центр, зум и параметры слоя тайлов
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.MapViewResponse}
// @Router /api/v1/map [get]
func (h *FieldHandler) GetMapView(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.fieldUC.GetMapView(), nil)
}
