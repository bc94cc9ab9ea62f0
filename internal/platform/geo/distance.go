package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

const EarthRadiusKm = 6371.0

// Point es una coordenada en grados decimales.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm calcula la distancia de gran círculo (haversine) entre dos puntos.
// Si falta alguno de los puntos (nil o NaN) devuelve +Inf, así cualquier radio finito lo excluye.
func DistanceKm(a, b *Point) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	if math.IsNaN(a.Latitude) || math.IsNaN(a.Longitude) || math.IsNaN(b.Latitude) || math.IsNaN(b.Longitude) {
		return math.Inf(1)
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DefaultCellPrecision ~ 4.9km x 4.9km.
const DefaultCellPrecision = 5

// Cell devuelve el geohash del punto truncado a precision caracteres.
// Se usa para guardar/loguear una ubicación aproximada, nunca para filtrar.
func Cell(p Point, precision int) string {
	if precision <= 0 || precision > 12 {
		precision = DefaultCellPrecision
	}
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, uint(precision))
}
