package domain

import (
	"fmt"
	"math"
)

// earthRadiusKm радиус Земли в километрах для формулы гаверсинусов
const earthRadiusKm = 6371

// Coordinates географические координаты в градусах
type Coordinates struct {
	Lat float64
	Lng float64
}

// Haversine вычисляет расстояние по большому кругу между двумя точками в километрах
// Входные координаты в градусах, внутри переводятся в радианы
func Haversine(a, b Coordinates) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FormatDistance форматирует расстояние для отображения
// Меньше километра - в метрах, иначе в километрах с одним знаком после запятой
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d meters", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// DistanceBand полуинтервал расстояний [MinKm, MaxKm) с человекочитаемой меткой
type DistanceBand struct {
	Label string
	MinKm float64
	MaxKm float64 // math.Inf(1) для последней полосы
	All   bool    // Полоса-passthrough "All Distances"
}

// Contains возвращает true, если расстояние попадает в полосу
func (b DistanceBand) Contains(km float64) bool {
	if b.All {
		return true
	}
	return km >= b.MinKm && km < b.MaxKm
}

// BandAll метка полосы без фильтрации
const BandAll = "All Distances"

// DistanceBands фиксированный упорядоченный набор полос расстояний
var DistanceBands = []DistanceBand{
	{Label: BandAll, All: true},
	{Label: "Very Near (0-500m)", MinKm: 0, MaxKm: 0.5},
	{Label: "Near (500m-2km)", MinKm: 0.5, MaxKm: 2},
	{Label: "Medium Distance (2-5km)", MinKm: 2, MaxKm: 5},
	{Label: "Far (5-15km)", MinKm: 5, MaxKm: 15},
	{Label: "Very Far (15-30km)", MinKm: 15, MaxKm: 30},
	{Label: "Long Distance (30km+)", MinKm: 30, MaxKm: math.Inf(1)},
}

// BandByLabel ищет полосу по метке
func BandByLabel(label string) (DistanceBand, bool) {
	for _, band := range DistanceBands {
		if band.Label == label {
			return band, true
		}
	}
	return DistanceBand{}, false
}
