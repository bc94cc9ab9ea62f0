package search

import (
	"strings"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/geo"
)

// ApplyFilters evalúa el predicado compuesto sobre records y devuelve los que pasan,
// en el mismo orden. Es pura: mismos inputs, mismo output. Nunca devuelve nil.
//
// Orden de las cláusulas (corta en la primera que falla):
//  1. breed, 2. color, 3. eyeColor (igualdad exacta, se saltean si están vacías)
//  4. postalCode (contiene; sin location => excluido)
//  5. radio (solo si el filtro tiene lat/lon; sin location => excluido)
func ApplyFilters(records []animals.StatusRecord, f FilterState) []animals.StatusRecord {
	out := make([]animals.StatusRecord, 0, len(records))

	center := f.Point()

	for _, r := range records {
		if f.Breed != "" && r.Animal.Breed != f.Breed {
			continue
		}
		if f.Color != "" && r.Animal.Color != f.Color {
			continue
		}
		if f.EyeColor != "" && r.Animal.EyeColor != f.EyeColor {
			continue
		}

		if f.PostalCode != "" {
			if r.Location == nil || !strings.Contains(r.Location.PostalCode, f.PostalCode) {
				continue
			}
		}

		if center != nil {
			if r.Location == nil {
				continue
			}
			if geo.DistanceKm(center, r.Location.Point()) > f.Location.Radius {
				continue
			}
		}

		out = append(out, r)
	}

	return out
}
