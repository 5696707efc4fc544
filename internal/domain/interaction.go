package domain

// InteractionState - состояние модального окна одной сессии.
// ModalOpen == true означает, что ActiveFieldID задан и есть в хранилище.
type InteractionState struct {
	ActiveFieldID string `json:"active_field_id,omitempty"`
	ModalOpen     bool   `json:"modal_open"`
	Version       uint64 `json:"version"`
}

// Active возвращает id поля, владеющего модальным окном
func (s InteractionState) Active() (string, bool) {
	if !s.ModalOpen {
		return "", false
	}
	return s.ActiveFieldID, true
}
