package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/interaction"
	"github.com/sportsfield-microservice/internal/metrics"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// EventPublisher - запись событий взаимодействия в стрим
type EventPublisher interface {
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

// InteractionUseCase связывает HTTP, реестр сессий и машину состояний модального окна
type InteractionUseCase struct {
	registry  *interaction.Registry
	fieldRepo repository.FieldRepository
	projector *OverlayProjector
	publisher EventPublisher
	logger    *zap.Logger
}

// NewInteractionUseCase создает новый экземпляр InteractionUseCase.
// publisher может быть nil: тогда события никуда не пишутся.
func NewInteractionUseCase(
	registry *interaction.Registry,
	fieldRepo repository.FieldRepository,
	projector *OverlayProjector,
	publisher EventPublisher,
	logger *zap.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		registry:  registry,
		fieldRepo: fieldRepo,
		projector: projector,
		publisher: publisher,
		logger:    logger,
	}
}

// StartSession создает сессию с закрытым модальным окном
func (uc *InteractionUseCase) StartSession() dto.SessionResponse {
	id, m := uc.registry.Create()

	return dto.SessionResponse{
		SessionID: id.String(),
		State:     m.State(),
	}
}

// EndSession уничтожает состояние сессии
func (uc *InteractionUseCase) EndSession(sessionID uuid.UUID) error {
	return uc.registry.End(sessionID)
}

// GetState - текущее состояние сессии
func (uc *InteractionUseCase) GetState(sessionID uuid.UUID) (domain.InteractionState, error) {
	m, err := uc.registry.Get(sessionID)
	if err != nil {
		return domain.InteractionState{}, err
	}
	return m.State(), nil
}

// OpenField открывает модальное окно поля, заменяя уже открытое
func (uc *InteractionUseCase) OpenField(ctx context.Context, sessionID uuid.UUID, fieldID string) (*dto.TransitionResponse, error) {
	m, err := uc.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	tr, err := m.RequestOpen(fieldID)
	if err != nil {
		if stderrors.Is(err, errors.ErrFieldNotFound) {
			metrics.InteractionTransitionsTotal.WithLabelValues(string(domain.ActionOpen), metrics.ResultNotFound).Inc()
		}
		uc.logger.Debug("Open rejected",
			zap.String("session_id", sessionID.String()),
			zap.String("field_id", fieldID),
			zap.Error(err))
		return nil, err
	}

	uc.record(ctx, sessionID, domain.ActionOpen, tr)
	return toTransitionResponse(tr), nil
}

// CloseModal закрывает модальное окно; для закрытого ничего не делает
func (uc *InteractionUseCase) CloseModal(ctx context.Context, sessionID uuid.UUID) (*dto.TransitionResponse, error) {
	m, err := uc.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	tr := m.RequestClose()
	uc.record(ctx, sessionID, domain.ActionClose, tr)
	return toTransitionResponse(tr), nil
}

// GetModal возвращает содержимое модального окна; nil если окно закрыто
func (uc *InteractionUseCase) GetModal(sessionID uuid.UUID) (*dto.ModalResponse, domain.InteractionState, error) {
	m, err := uc.registry.Get(sessionID)
	if err != nil {
		return nil, domain.InteractionState{}, err
	}

	content, state, open := m.ModalContent()
	if !open {
		return nil, state, nil
	}
	return &dto.ModalResponse{State: state, Content: content}, state, nil
}

// SessionOverlays - полигоны, клик по которым открывает модальное окно в этой сессии
func (uc *InteractionUseCase) SessionOverlays(ctx context.Context, sessionID uuid.UUID, convention string) ([]domain.Overlay, error) {
	if _, err := uc.registry.Get(sessionID); err != nil {
		return nil, err
	}

	conv, err := uc.projector.Convention(convention)
	if err != nil {
		return nil, err
	}

	activate := func(fieldID string) error {
		_, err := uc.OpenField(ctx, sessionID, fieldID)
		return err
	}
	return uc.projector.ProjectAll(uc.fieldRepo.All(), conv, activate), nil
}

// ActiveSessions - количество живых сессий
func (uc *InteractionUseCase) ActiveSessions() int {
	return uc.registry.Len()
}

func (uc *InteractionUseCase) record(ctx context.Context, sessionID uuid.UUID, action domain.InteractionAction, tr interaction.Transition) {
	if !tr.Changed {
		metrics.InteractionTransitionsTotal.WithLabelValues(string(action), metrics.ResultNoop).Inc()
		return
	}
	metrics.InteractionTransitionsTotal.WithLabelValues(string(action), metrics.ResultChanged).Inc()

	if uc.publisher == nil {
		return
	}

	event := domain.InteractionEvent{
		EventID:         uuid.New(),
		SessionID:       sessionID,
		Action:          action,
		FieldID:         tr.Current.ActiveFieldID,
		PreviousFieldID: tr.Previous.ActiveFieldID,
		Version:         tr.Current.Version,
		OccurredAt:      time.Now().UTC(),
	}

	// Ошибка публикации не отменяет переход
	if err := uc.publisher.PublishToStream(ctx, domain.StreamFieldInteraction, event); err != nil {
		metrics.EventsPublishFailuresTotal.Inc()
		uc.logger.Warn("Failed to publish interaction event",
			zap.String("session_id", sessionID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func toTransitionResponse(tr interaction.Transition) *dto.TransitionResponse {
	return &dto.TransitionResponse{
		Previous: tr.Previous,
		State:    tr.Current,
		Changed:  tr.Changed,
	}
}
