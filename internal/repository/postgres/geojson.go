package postgres

import (
	"encoding/json"
	"fmt"
)

type geoJSONPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// PolygonFromGeoJSON разбирает результат ST_AsGeoJSON и переводит вершины
// из [lng, lat] в порядок набора данных [lat, lng]. Порядок контуров и вершин сохраняется.
func PolygonFromGeoJSON(raw string) ([][][]float64, error) {
	if raw == "" {
		return nil, fmt.Errorf("geometry is null")
	}

	var poly geoJSONPolygon
	if err := json.Unmarshal([]byte(raw), &poly); err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	if poly.Type != "Polygon" {
		return nil, fmt.Errorf("geometry type %q is not Polygon", poly.Type)
	}

	rings := make([][][]float64, len(poly.Coordinates))
	for i, ring := range poly.Coordinates {
		rings[i] = make([][]float64, len(ring))
		for j, p := range ring {
			if len(p) < 2 {
				return nil, fmt.Errorf("ring %d point %d has %d coordinates", i, j, len(p))
			}
			rings[i][j] = []float64{p[1], p[0]}
		}
	}
	return rings, nil
}
