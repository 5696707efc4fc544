package dto

import "github.com/sportsfield-microservice/internal/domain"

// MapViewResponse - начальный вид карты для слоя тайлов
type MapViewResponse struct {
	Bounds      domain.BoundingBox `json:"bounds"`
	Center      domain.Point       `json:"center"`
	Zoom        int                `json:"zoom"`
	TileURL     string             `json:"tile_url"`
	Attribution string             `json:"attribution"`
	Convention  string             `json:"convention"`
}

// OverlaysResponse - полигоны всех полей в порядке набора данных
type OverlaysResponse struct {
	Convention domain.RenderConvention `json:"convention"`
	Overlays   []domain.Overlay        `json:"overlays"`
}

// SessionResponse - новая сессия взаимодействия
type SessionResponse struct {
	SessionID string                  `json:"session_id"`
	State     domain.InteractionState `json:"state"`
}

// TransitionResponse - результат open/close
type TransitionResponse struct {
	Previous domain.InteractionState `json:"previous"`
	State    domain.InteractionState `json:"state"`
	Changed  bool                    `json:"changed"`
}

// ModalResponse - содержимое открытого модального окна
type ModalResponse struct {
	State   domain.InteractionState `json:"state"`
	Content domain.ExtendedView     `json:"content"`
}

// FeatureCollection - GeoJSON-коллекция полигонов
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature - GeoJSON Feature с полигоном поля
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   PolygonGeometry   `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

// PolygonGeometry - GeoJSON Polygon
type PolygonGeometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}
