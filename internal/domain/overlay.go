package domain

// RenderConvention - порядок осей, который ожидает поверхность отрисовки
type RenderConvention string

const (
	// ConventionLatLng - [lat, lng], как у Leaflet
	ConventionLatLng RenderConvention = "latlng"
	// ConventionLngLat - [lng, lat], как в GeoJSON
	ConventionLngLat RenderConvention = "lnglat"
)

// Valid сообщает, известна ли конвенция
func (c RenderConvention) Valid() bool {
	return c == ConventionLatLng || c == ConventionLngLat
}

type OverlayStyle struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillOpacity float64 `json:"fill_opacity"`
}

// Overlay - описание полигона для слоя карты
type Overlay struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Convention RenderConvention `json:"convention"`
	Rings      [][][2]float64   `json:"rings"`
	Anchor     [2]float64       `json:"anchor"`
	Style      OverlayStyle     `json:"style"`

	// OnActivate вызывается один раз на каждый жест пользователя (клик, "Más información")
	OnActivate func() error `json:"-"`
}
