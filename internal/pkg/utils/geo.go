package utils

import "math"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Bounds накапливает ограничивающий прямоугольник по точкам
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
	empty          bool
}

// NewBounds возвращает пустой прямоугольник
func NewBounds() Bounds {
	return Bounds{
		MinLat: math.Inf(1), MinLon: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLon: math.Inf(-1),
		empty: true,
	}
}

// Extend расширяет прямоугольник точкой
func (b *Bounds) Extend(lat, lon float64) {
	b.MinLat = math.Min(b.MinLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MaxLon = math.Max(b.MaxLon, lon)
	b.empty = false
}

// IsEmpty - не было ни одной точки
func (b Bounds) IsEmpty() bool {
	return b.empty
}

// Center возвращает центр прямоугольника
func (b Bounds) Center() (lat, lon float64) {
	if b.empty {
		return 0, 0
	}
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// VertexCentroid - среднее арифметическое вершин.
// Замыкающая точка (равная первой) не учитывается.
func VertexCentroid(lats, lons []float64) (lat, lon float64) {
	n := len(lats)
	if n == 0 || n != len(lons) {
		return 0, 0
	}
	if n > 1 && lats[0] == lats[n-1] && lons[0] == lons[n-1] {
		n--
	}

	var sumLat, sumLon float64
	for i := 0; i < n; i++ {
		sumLat += lats[i]
		sumLon += lons[i]
	}
	return sumLat / float64(n), sumLon / float64(n)
}
