package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/interaction"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/usecase"
	"github.com/sportsfield-microservice/internal/view"
)

func newInteractionUseCase(t *testing.T, publisher usecase.EventPublisher) *usecase.InteractionUseCase {
	t.Helper()

	store := newTestStore(t)
	projector, err := usecase.NewOverlayProjector(domain.ConventionLatLng, "green")
	require.NoError(t, err)

	return usecase.NewInteractionUseCase(
		interaction.NewRegistry(store, time.Hour, zap.NewNop()),
		store,
		projector,
		publisher,
		zap.NewNop(),
	)
}

func eventMatcher(action domain.InteractionAction, fieldID, previous string, version uint64) interface{} {
	return mock.MatchedBy(func(e domain.InteractionEvent) bool {
		return e.Action == action && e.FieldID == fieldID && e.PreviousFieldID == previous && e.Version == version
	})
}

func TestInteractionUseCase_OpenReplaceClose(t *testing.T) {
	ctx := context.Background()
	pub := &MockPublisher{}
	uc := newInteractionUseCase(t, pub)

	session := uc.StartSession()
	sid := uuid.MustParse(session.SessionID)
	assert.False(t, session.State.ModalOpen)

	pub.On("PublishToStream", ctx, domain.StreamFieldInteraction, eventMatcher(domain.ActionOpen, "F1", "", 1)).Return(nil).Once()
	pub.On("PublishToStream", ctx, domain.StreamFieldInteraction, eventMatcher(domain.ActionOpen, "F2", "F1", 2)).Return(nil).Once()
	pub.On("PublishToStream", ctx, domain.StreamFieldInteraction, eventMatcher(domain.ActionClose, "", "F2", 3)).Return(nil).Once()

	tr, err := uc.OpenField(ctx, sid, "F1")
	require.NoError(t, err)
	assert.True(t, tr.Changed)

	tr, err = uc.OpenField(ctx, sid, "F2")
	require.NoError(t, err)
	assert.Equal(t, "F1", tr.Previous.ActiveFieldID)

	modal, state, err := uc.GetModal(sid)
	require.NoError(t, err)
	require.NotNil(t, modal)
	assert.Equal(t, "F2", state.ActiveFieldID)
	f2, err := newTestStore(t).Get("F2")
	require.NoError(t, err)
	assert.Equal(t, view.Extended(f2), modal.Content)

	tr, err = uc.CloseModal(ctx, sid)
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.False(t, tr.State.ModalOpen)

	modal, state, err = uc.GetModal(sid)
	require.NoError(t, err)
	assert.Nil(t, modal)
	assert.Equal(t, uint64(3), state.Version)

	pub.AssertExpectations(t)
}

func TestInteractionUseCase_NoEventWithoutChange(t *testing.T) {
	ctx := context.Background()
	pub := &MockPublisher{}
	uc := newInteractionUseCase(t, pub)
	sid := uuid.MustParse(uc.StartSession().SessionID)

	pub.On("PublishToStream", ctx, domain.StreamFieldInteraction, mock.Anything).Return(nil).Once()

	_, err := uc.OpenField(ctx, sid, "F1")
	require.NoError(t, err)
	tr, err := uc.OpenField(ctx, sid, "F1")
	require.NoError(t, err)
	assert.False(t, tr.Changed)

	_, err = uc.OpenField(ctx, sid, "missing")
	assert.True(t, stderrors.Is(err, errors.ErrFieldNotFound))

	state, err := uc.GetState(sid)
	require.NoError(t, err)
	assert.Equal(t, domain.InteractionState{ActiveFieldID: "F1", ModalOpen: true, Version: 1}, state)

	pub.AssertNumberOfCalls(t, "PublishToStream", 1)
}

func TestInteractionUseCase_PublishFailureKeepsTransition(t *testing.T) {
	ctx := context.Background()
	pub := &MockPublisher{}
	pub.On("PublishToStream", ctx, domain.StreamFieldInteraction, mock.Anything).Return(stderrors.New("redis down"))

	uc := newInteractionUseCase(t, pub)
	sid := uuid.MustParse(uc.StartSession().SessionID)

	tr, err := uc.OpenField(ctx, sid, "F1")
	require.NoError(t, err)
	assert.True(t, tr.State.ModalOpen)
}

func TestInteractionUseCase_WithoutPublisher(t *testing.T) {
	uc := newInteractionUseCase(t, nil)
	sid := uuid.MustParse(uc.StartSession().SessionID)

	_, err := uc.OpenField(context.Background(), sid, "F2")
	assert.NoError(t, err)
}

func TestInteractionUseCase_UnknownSession(t *testing.T) {
	ctx := context.Background()
	uc := newInteractionUseCase(t, nil)
	sid := uuid.New()

	_, err := uc.OpenField(ctx, sid, "F1")
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))

	_, err = uc.CloseModal(ctx, sid)
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))

	_, _, err = uc.GetModal(sid)
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))

	_, err = uc.GetState(sid)
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))

	assert.True(t, stderrors.Is(uc.EndSession(sid), errors.ErrSessionNotFound))
}

func TestInteractionUseCase_EndSession(t *testing.T) {
	uc := newInteractionUseCase(t, nil)
	sid := uuid.MustParse(uc.StartSession().SessionID)
	assert.Equal(t, 1, uc.ActiveSessions())

	require.NoError(t, uc.EndSession(sid))
	assert.Equal(t, 0, uc.ActiveSessions())

	_, err := uc.GetState(sid)
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))
}

func TestInteractionUseCase_SessionOverlays(t *testing.T) {
	ctx := context.Background()
	uc := newInteractionUseCase(t, nil)
	sid := uuid.MustParse(uc.StartSession().SessionID)

	overlays, err := uc.SessionOverlays(ctx, sid, "")
	require.NoError(t, err)
	require.Len(t, overlays, 2)

	// clicking the second polygon opens its modal
	require.NoError(t, overlays[1].OnActivate())
	state, err := uc.GetState(sid)
	require.NoError(t, err)
	assert.Equal(t, "F2", state.ActiveFieldID)

	// clicking it again changes nothing
	require.NoError(t, overlays[1].OnActivate())
	state, err = uc.GetState(sid)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Version)

	_, err = uc.SessionOverlays(ctx, sid, "bad")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConvention))

	_, err = uc.SessionOverlays(ctx, uuid.New(), "")
	assert.True(t, stderrors.Is(err, errors.ErrSessionNotFound))
}
