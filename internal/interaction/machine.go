// Package interaction хранит состояние модального окна для каждой клиентской сессии.
package interaction

import (
	"sync"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/view"
)

// FieldLookup - то, что машине нужно от хранилища полей
type FieldLookup interface {
	Get(id string) (domain.FieldRecord, error)
}

// Transition - результат запроса к машине
type Transition struct {
	Previous domain.InteractionState
	Current  domain.InteractionState
	Changed  bool
}

// Machine - состояния Closed и Open(id). Переходы одной сессии сериализуются мьютексом.
type Machine struct {
	mu       sync.Mutex
	fields   FieldLookup
	state    domain.InteractionState
	active   domain.FieldRecord
	lastSeen time.Time
	now      func() time.Time
}

// NewMachine создает машину в состоянии Closed
func NewMachine(fields FieldLookup) *Machine {
	return newMachine(fields, time.Now)
}

func newMachine(fields FieldLookup, now func() time.Time) *Machine {
	return &Machine{
		fields:   fields,
		now:      now,
		lastSeen: now(),
	}
}

// RequestOpen открывает модальное окно для id, заменяя уже открытое.
// Если id нет в хранилище, возвращает ошибку хранилища и не меняет состояние.
func (m *Machine) RequestOpen(id string) (Transition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSeen = m.now()
	prev := m.state

	if prev.ModalOpen && prev.ActiveFieldID == id {
		return Transition{Previous: prev, Current: prev}, nil
	}

	record, err := m.fields.Get(id)
	if err != nil {
		return Transition{Previous: prev, Current: prev}, err
	}

	m.active = record
	// id может ссылаться на буфер запроса, храним id из хранилища
	m.state = domain.InteractionState{
		ActiveFieldID: record.ID,
		ModalOpen:     true,
		Version:       prev.Version + 1,
	}
	return Transition{Previous: prev, Current: m.state, Changed: true}, nil
}

// RequestClose закрывает модальное окно; в состоянии Closed ничего не делает
func (m *Machine) RequestClose() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSeen = m.now()
	prev := m.state

	if !prev.ModalOpen {
		return Transition{Previous: prev, Current: prev}
	}

	m.active = domain.FieldRecord{}
	m.state = domain.InteractionState{Version: prev.Version + 1}
	return Transition{Previous: prev, Current: m.state, Changed: true}
}

// State возвращает снимок состояния
func (m *Machine) State() domain.InteractionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSeen = m.now()
	return m.state
}

// ModalContent возвращает содержимое модального окна активного поля
func (m *Machine) ModalContent() (domain.ExtendedView, domain.InteractionState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSeen = m.now()
	if !m.state.ModalOpen {
		return domain.ExtendedView{}, m.state, false
	}
	return view.Extended(m.active), m.state, true
}

// LastActivity - время последнего обращения к машине
func (m *Machine) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}
