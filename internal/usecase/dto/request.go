package dto

// OverlayQuery - параметры запроса полигонов
type OverlayQuery struct {
	Convention string `query:"convention" validate:"omitempty,oneof=latlng lnglat"`
}

// SessionPath - идентификатор сессии из пути
type SessionPath struct {
	SessionID string `params:"sid" validate:"required,uuid4"`
}

// OpenFieldPath - сессия и поле, для которого открывается модальное окно
type OpenFieldPath struct {
	SessionID string `params:"sid" validate:"required,uuid4"`
	FieldID   string `params:"id" validate:"required,max=128"`
}
