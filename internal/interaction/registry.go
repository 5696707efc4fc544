package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsfield-microservice/internal/pkg/errors"
)

// Registry держит по одной машине на сессию
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Machine
	fields   FieldLookup
	idleTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// RegistryOption настраивает Registry
type RegistryOption func(*Registry)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry создает реестр сессий; idleTTL <= 0 отключает вытеснение
func NewRegistry(fields FieldLookup, idleTTL time.Duration, logger *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[uuid.UUID]*Machine),
		fields:   fields,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create начинает новую сессию с машиной в состоянии Closed
func (r *Registry) Create() (uuid.UUID, *Machine) {
	id := uuid.New()
	m := newMachine(r.fields, r.now)

	r.mu.Lock()
	r.sessions[id] = m
	r.mu.Unlock()

	r.logger.Debug("Session created", zap.String("session_id", id.String()))
	return id, m
}

// Get возвращает машину сессии или ErrSessionNotFound
func (r *Registry) Get(id uuid.UUID) (*Machine, error) {
	r.mu.RLock()
	m, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	return m, nil
}

// End уничтожает состояние сессии
func (r *Registry) End(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return errors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	delete(r.sessions, id)

	r.logger.Debug("Session ended", zap.String("session_id", id.String()))
	return nil
}

// Len - количество активных сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep удаляет сессии без активности дольше idleTTL и возвращает их число
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}

	deadline := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, m := range r.sessions {
		if m.LastActivity().Before(deadline) {
			delete(r.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		r.logger.Info("Idle sessions evicted",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(r.sessions)))
	}
	return evicted
}

// Run периодически вызывает Sweep до отмены ctx
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
