package usecase

import (
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/pkg/utils"
	"github.com/sportsfield-microservice/internal/usecase/dto"
)

const (
	defaultOverlayColor = "green"
	overlayWeight       = 3
	overlayFillOpacity  = 0.2
)

// ActivateFunc вызывается при клике по полигону с id его поля
type ActivateFunc func(fieldID string) error

// OverlayProjector превращает геометрию записей в полигоны для поверхности отрисовки.
// Только перестановка осей: порядок контуров и точек сохраняется.
type OverlayProjector struct {
	convention domain.RenderConvention
	style      domain.OverlayStyle
}

// NewOverlayProjector создает проектор с конвенцией по умолчанию и цветом слоя
func NewOverlayProjector(convention domain.RenderConvention, color string) (*OverlayProjector, error) {
	if !convention.Valid() {
		return nil, errors.ErrInvalidConvention.WithDetails(map[string]interface{}{
			"convention": string(convention),
		})
	}
	if color == "" {
		color = defaultOverlayColor
	}

	return &OverlayProjector{
		convention: convention,
		style: domain.OverlayStyle{
			Color:       color,
			Weight:      overlayWeight,
			FillOpacity: overlayFillOpacity,
		},
	}, nil
}

// Convention разбирает конвенцию из запроса; пустая строка - конвенция по умолчанию
func (p *OverlayProjector) Convention(raw string) (domain.RenderConvention, error) {
	if raw == "" {
		return p.convention, nil
	}

	c := domain.RenderConvention(raw)
	if !c.Valid() {
		return "", errors.ErrInvalidConvention.WithDetails(map[string]interface{}{
			"convention": raw,
		})
	}
	return c, nil
}

// Style - общий стиль всех полигонов
func (p *OverlayProjector) Style() domain.OverlayStyle {
	return p.style
}

// Project строит полигон записи. activate может быть nil: тогда полигон не интерактивен.
func (p *OverlayProjector) Project(r domain.FieldRecord, convention domain.RenderConvention, activate ActivateFunc) domain.Overlay {
	o := domain.Overlay{
		ID:         r.ID,
		Name:       r.Name,
		Convention: convention,
		Rings:      make([][][2]float64, 0, len(r.Geometry)),
		Style:      p.style,
	}

	for _, ring := range r.Geometry {
		o.Rings = append(o.Rings, ProjectRing(ring, convention))
	}

	lat, lon := anchorOf(r.OuterRing())
	o.Anchor = orient(lat, lon, convention)

	if activate != nil {
		id := r.ID
		o.OnActivate = func() error {
			return activate(id)
		}
	}
	return o
}

// ProjectAll - по одному полигону на запись, в порядке записей
func (p *OverlayProjector) ProjectAll(records []domain.FieldRecord, convention domain.RenderConvention, activate ActivateFunc) []domain.Overlay {
	overlays := make([]domain.Overlay, 0, len(records))
	for _, r := range records {
		overlays = append(overlays, p.Project(r, convention, activate))
	}
	return overlays
}

// FeatureCollection рисует записи как GeoJSON; координаты всегда [lng, lat]
func (p *OverlayProjector) FeatureCollection(records []domain.FieldRecord) dto.FeatureCollection {
	fc := dto.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]dto.Feature, 0, len(records)),
	}

	for _, r := range records {
		coords := make([][][2]float64, 0, len(r.Geometry))
		for _, ring := range r.Geometry {
			coords = append(coords, ProjectRing(ring, domain.ConventionLngLat))
		}

		fc.Features = append(fc.Features, dto.Feature{
			Type: "Feature",
			ID:   r.ID,
			Geometry: dto.PolygonGeometry{
				Type:        "Polygon",
				Coordinates: coords,
			},
			Properties: map[string]string{
				"id":    r.ID,
				"name":  r.Name,
				"color": p.style.Color,
			},
		})
	}
	return fc
}

// ProjectRing переставляет оси точек контура под конвенцию
func ProjectRing(ring domain.Ring, convention domain.RenderConvention) [][2]float64 {
	out := make([][2]float64, len(ring))
	for i, pt := range ring {
		out[i] = orient(pt.Lat, pt.Lon, convention)
	}
	return out
}

func orient(lat, lon float64, convention domain.RenderConvention) [2]float64 {
	if convention == domain.ConventionLngLat {
		return [2]float64{lon, lat}
	}
	return [2]float64{lat, lon}
}

func anchorOf(ring domain.Ring) (lat, lon float64) {
	lats := make([]float64, len(ring))
	lons := make([]float64, len(ring))
	for i, pt := range ring {
		lats[i] = pt.Lat
		lons[i] = pt.Lon
	}
	return utils.VertexCentroid(lats, lons)
}
