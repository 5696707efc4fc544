package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamFieldInteraction = "stream:field:interaction"
)

type InteractionAction string

const (
	ActionOpen  InteractionAction = "open"
	ActionClose InteractionAction = "close"
)

// InteractionEvent - событие смены состояния модального окна
type InteractionEvent struct {
	EventID         uuid.UUID         `json:"event_id"`
	SessionID       uuid.UUID         `json:"session_id"`
	Action          InteractionAction `json:"action"`
	FieldID         string            `json:"field_id,omitempty"`
	PreviousFieldID string            `json:"previous_field_id,omitempty"`
	Version         uint64            `json:"version"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
