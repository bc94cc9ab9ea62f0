package geocoding

import (
	"context"
	"fmt"
)

// Place es el resultado de un geocoding (forward o reverse).
type Place struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Geocoder resuelve direcciones contra un proveedor externo.
// Reverse/Forward devuelven (nil, nil) cuando el proveedor no encuentra nada.
type Geocoder interface {
	Reverse(ctx context.Context, longitude, latitude float64) (*Place, error)
	Forward(ctx context.Context, query string) (*Place, error)
	Suggest(ctx context.Context, query string, limit int) ([]Place, error)
}

// Error envuelve cualquier falla de red o del proveedor. No hay retry automático.
type Error struct {
	Op  string // "reverse", "forward", "suggest"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("geocoding %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
