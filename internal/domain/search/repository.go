package search

import (
	"context"
	"time"

	"lost-found-search/internal/domain/animals"
)

// Session es lo que se persiste de una vista: sus filtros.
// Listas y conteos siempre se vuelven a pedir.
type Session struct {
	ID        string
	Kind      animals.Status
	Filters   FilterState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionRepository guarda sesiones. Get, UpdateFilters y Delete devuelven
// ErrSessionNotFound si no existe.
type SessionRepository interface {
	// Save inserta o reemplaza (alta de sesión).
	Save(ctx context.Context, s Session) error
	// UpdateFilters solo toca una sesión existente: nunca la vuelve a crear.
	UpdateFilters(ctx context.Context, id string, f FilterState, updatedAt time.Time) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
