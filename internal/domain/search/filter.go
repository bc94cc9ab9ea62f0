package search

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"lost-found-search/internal/platform/geo"
)

var (
	ErrInvalidFilter = errors.New("invalid filter")
)

const DefaultRadiusKm = 10.0

// Field identifica un campo de FilterState. Los nombres son los que usa el front.
type Field string

const (
	FieldBreed              Field = "breed"
	FieldColor              Field = "color"
	FieldEyeColor           Field = "eyeColor"
	FieldPostalCode         Field = "postalCode"
	FieldLatitude           Field = "location.latitude"
	FieldLongitude          Field = "location.longitude"
	FieldRadius             Field = "location.radius"
	FieldAddress            Field = "location.address"
	FieldCity               Field = "location.city"
	FieldLocationPostalCode Field = "location.postalCode"
)

// LocationFilter es la rama geográfica del filtro.
// Radius solo tiene efecto si Latitude y Longitude están seteados.
type LocationFilter struct {
	Latitude   *float64
	Longitude  *float64
	Radius     float64
	Address    string
	City       string
	PostalCode string
}

type FilterState struct {
	Breed      string
	Color      string
	EyeColor   string
	PostalCode string
	Location   LocationFilter
}

func DefaultFilters(radiusKm float64) FilterState {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return FilterState{Location: LocationFilter{Radius: radiusKm}}
}

func (f FilterState) HasCoordinates() bool {
	return f.Location.Latitude != nil && f.Location.Longitude != nil
}

// Point devuelve nil si el filtro no tiene coordenadas completas.
func (f FilterState) Point() *geo.Point {
	if !f.HasCoordinates() {
		return nil
	}
	return &geo.Point{Latitude: *f.Location.Latitude, Longitude: *f.Location.Longitude}
}

// SetFilter es la única transición de FilterState. Siempre devuelve un estado consistente:
//   - postalCode no vacío limpia la ubicación (coordenadas, dirección, ciudad, cp de la ubicación)
//   - setear una coordenada limpia postalCode
//
// Nunca quedan postalCode y coordenadas poblados a la vez.
func SetFilter(state FilterState, field Field, value string) (FilterState, error) {
	value = strings.TrimSpace(value)
	next := state

	switch field {
	case FieldBreed:
		next.Breed = value
	case FieldColor:
		next.Color = value
	case FieldEyeColor:
		next.EyeColor = value

	case FieldPostalCode:
		next.PostalCode = value
		if value != "" {
			next.Location = clearedLocation(next.Location)
		}

	case FieldLatitude, FieldLongitude:
		coord, err := parseCoordinate(field, value)
		if err != nil {
			return state, err
		}
		if field == FieldLatitude {
			next.Location.Latitude = coord
		} else {
			next.Location.Longitude = coord
		}
		if coord != nil {
			next.PostalCode = ""
		}

	case FieldRadius:
		if value == "" {
			next.Location.Radius = DefaultRadiusKm
			break
		}
		r, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return state, ErrInvalidFilter
		}
		next.Location.Radius = r

	case FieldAddress:
		next.Location.Address = value
	case FieldCity:
		next.Location.City = value
	case FieldLocationPostalCode:
		next.Location.PostalCode = value

	default:
		return state, ErrInvalidFilter
	}

	return next, nil
}

// WithPlace aplica una ubicación resuelta (posición actual o dirección elegida).
// Es equivalente a setear las coordenadas: postalCode queda vacío.
func WithPlace(state FilterState, lat, lon float64, address, city, postalCode string) FilterState {
	next := state
	next.PostalCode = ""
	next.Location.Latitude = &lat
	next.Location.Longitude = &lon
	next.Location.Address = address
	next.Location.City = city
	next.Location.PostalCode = postalCode
	return next
}

// ClearLocation limpia solo la rama de ubicación. El radio elegido se conserva.
func ClearLocation(state FilterState) FilterState {
	next := state
	next.Location = clearedLocation(state.Location)
	return next
}

func clearedLocation(l LocationFilter) LocationFilter {
	return LocationFilter{Radius: l.Radius}
}

func parseCoordinate(field Field, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ErrInvalidFilter
	}
	limit := 180.0
	if field == FieldLatitude {
		limit = 90
	}
	if v < -limit || v > limit {
		return nil, ErrInvalidFilter
	}
	return &v, nil
}
