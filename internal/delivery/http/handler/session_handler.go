package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/pkg/utils"
	"github.com/sportsfield-microservice/internal/pkg/validator"
	"github.com/sportsfield-microservice/internal/usecase"
	"github.com/sportsfield-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SessionHandler - обработчик сессий взаимодействия и модального окна
type SessionHandler struct {
	interactionUC *usecase.InteractionUseCase
	logger        *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(interactionUC *usecase.InteractionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		interactionUC: interactionUC,
		logger:        logger,
	}
}

// Create godoc
// @Summary Новая сессия
// @Description Создаёт сессию с закрытым модальным окном
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	session := h.interactionUC.StartSession()
	h.logger.Debug("Session started", zap.String("session_id", session.SessionID))
	return utils.SendCreated(c, session)
}

// End godoc
// @Summary Завершить сессию
// @Tags Sessions
// @Param sid path string true "ID сессии"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid} [delete]
func (h *SessionHandler) End(c *fiber.Ctx) error {
	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.interactionUC.EndSession(sid); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetState godoc
// @Summary Состояние модального окна
// @Tags Sessions
// @Produce json
// @Param sid path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=domain.InteractionState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid}/state [get]
func (h *SessionHandler) GetState(c *fiber.Ctx) error {
	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	state, err := h.interactionUC.GetState(sid)
	if err != nil {
		return utils.SendError(c, err)
	}

	setETag(c, state)
	return utils.SendSuccess(c, state, &utils.Meta{Version: state.Version})
}

// Open godoc
// @Summary Открыть модальное окно поля
// @Description Заменяет уже открытое окно. Повторное открытие того же поля ничего не меняет.
// @Tags Sessions
// @Produce json
// @Param sid path string true "ID сессии"
// @Param id path string true "ID поля"
// @Success 200 {object} utils.SuccessResponse{data=dto.TransitionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid}/open/{id} [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	var path dto.OpenFieldPath
	if err := c.ParamsParser(&path); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&path); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	tr, err := h.interactionUC.OpenField(c.UserContext(), sid, path.FieldID)
	if err != nil {
		return utils.SendError(c, err)
	}

	setETag(c, tr.State)
	return utils.SendSuccess(c, tr, &utils.Meta{Version: tr.State.Version})
}

// Close godoc
// @Summary Закрыть модальное окно
// @Description Для закрытого окна ничего не делает
// @Tags Sessions
// @Produce json
// @Param sid path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.TransitionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid}/close [post]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	tr, err := h.interactionUC.CloseModal(c.UserContext(), sid)
	if err != nil {
		return utils.SendError(c, err)
	}

	setETag(c, tr.State)
	return utils.SendSuccess(c, tr, &utils.Meta{Version: tr.State.Version})
}

// GetModal godoc
// @Summary Содержимое модального окна
// @Description 204 если окно закрыто. ETag меняется с каждым переходом; If-None-Match даёт 304.
// @Tags Sessions
// @Produce json
// @Param sid path string true "ID сессии"
// @Param If-None-Match header string false "ETag из предыдущего ответа"
// @Success 200 {object} utils.SuccessResponse{data=dto.ModalResponse}
// @Success 204
// @Success 304
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid}/modal [get]
func (h *SessionHandler) GetModal(c *fiber.Ctx) error {
	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	modal, state, err := h.interactionUC.GetModal(sid)
	if err != nil {
		return utils.SendError(c, err)
	}

	tag := setETag(c, state)
	if c.Get(fiber.HeaderIfNoneMatch) == tag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	if modal == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return utils.SendSuccess(c, modal, &utils.Meta{Version: state.Version})
}

// ListOverlays godoc
// @Summary Полигоны для сессии
// @Description То же, что /fields, но в контексте сессии
// @Tags Sessions
// @Produce json
// @Param sid path string true "ID сессии"
// @Param convention query string false "Порядок осей (latlng, lnglat)"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Overlay}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{sid}/fields [get]
func (h *SessionHandler) ListOverlays(c *fiber.Ctx) error {
	sid, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var q dto.OverlayQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	overlays, err := h.interactionUC.SessionOverlays(c.UserContext(), sid, q.Convention)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, overlays, &utils.Meta{Total: len(overlays)})
}

func setETag(c *fiber.Ctx, state domain.InteractionState) string {
	tag := fmt.Sprintf(`"v%d"`, state.Version)
	c.Set(fiber.HeaderETag, tag)
	return tag
}
