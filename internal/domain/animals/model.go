package animals

import (
	"time"

	"lost-found-search/internal/platform/geo"
)

// Status es la disposición de un animal en un momento dado.
type Status string

const (
	StatusLost  Status = "LOST"
	StatusFound Status = "FOUND"
	StatusOwn   Status = "OWN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusOwn:
		return true
	}
	return false
}

// Animal es inmutable para el motor de búsqueda; viene de la API remota.
type Animal struct {
	ID          string
	Name        string
	Breed       string
	Color       string
	EyeColor    string
	FurType     string
	Gender      string
	DateOfBirth *time.Time
	Images      []string
}

// Location de un reporte. Latitude/Longitude pueden faltar (solo código postal, p.ej.).
type Location struct {
	Latitude   *float64
	Longitude  *float64
	Address    string
	City       string
	PostalCode string
}

// Point devuelve nil si faltan coordenadas.
func (l *Location) Point() *geo.Point {
	if l == nil || l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &geo.Point{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

// StatusRecord es un reporte (LOST/FOUND/OWN). Un animal puede tener varios a lo largo del tiempo.
type StatusRecord struct {
	StatusID   string
	Status     Status
	ReportDate time.Time
	Comment    string
	Location   *Location
	Animal     Animal
}

// Direction selecciona el pool contra el que se buscan coincidencias.
type Direction string

const (
	// DirectionLostToFound: candidato perdido, se compara contra los encontrados.
	DirectionLostToFound Direction = "lost_to_found"
	// DirectionFoundToLost: candidato encontrado, se compara contra los perdidos.
	DirectionFoundToLost Direction = "found_to_lost"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionLostToFound, DirectionFoundToLost:
		return Direction(s), true
	}
	return "", false
}

// DirectionFor devuelve la dirección de búsqueda para registros con ese status.
func DirectionFor(s Status) Direction {
	if s == StatusFound {
		return DirectionFoundToLost
	}
	return DirectionLostToFound
}

// SubScores por atributo, 0-100. Los calcula el servicio remoto.
type SubScores struct {
	Color    float64
	Breed    float64
	Fur      float64
	Eyes     float64
	Distance float64
}

// MatchCandidate es opaco para el motor: solo se cuenta o se reenvía.
type MatchCandidate struct {
	MatchedStatus StatusRecord
	MatchScore    float64
	Scores        SubScores
}
