package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/domain/search"
	"lost-found-search/internal/platform/geo"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

// filtersJSON es el formato guardado en la columna filters (jsonb).
type filtersJSON struct {
	Breed      string       `json:"breed"`
	Color      string       `json:"color"`
	EyeColor   string       `json:"eyeColor"`
	PostalCode string       `json:"postalCode"`
	Location   locationJSON `json:"location"`
}

type locationJSON struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Radius     float64  `json:"radius"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
}

func (r *SessionsRepo) Save(ctx context.Context, s search.Session) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	filters, err := json.Marshal(toFiltersJSON(s.Filters))
	if err != nil {
		return err
	}

	// created_at se conserva en el upsert.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO search_sessions (
			id, kind, filters, location_cell, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE
		SET
			filters = EXCLUDED.filters,
			location_cell = EXCLUDED.location_cell,
			updated_at = EXCLUDED.updated_at
	`,
		s.ID,
		string(s.Kind),
		filters,
		locationCell(s.Filters),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

// UpdateFilters es update-only: si la sesión ya se borró no la recrea.
func (r *SessionsRepo) UpdateFilters(ctx context.Context, id string, f search.FilterState, updatedAt time.Time) error {
	filters, err := json.Marshal(toFiltersJSON(f))
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE search_sessions
		SET
			filters = $2,
			location_cell = $3,
			updated_at = $4
		WHERE id = $1
	`,
		id,
		filters,
		locationCell(f),
		updatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return search.ErrSessionNotFound
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return search.ErrSessionNotFound
	}
	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (search.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return search.Session{}, search.ErrSessionNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, filters, created_at, updated_at
		FROM search_sessions
		WHERE id = $1
	`, id)

	var (
		s    search.Session
		kind string
		raw  []byte
	)
	if err := row.Scan(&s.ID, &kind, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return search.Session{}, search.ErrSessionNotFound
		}
		// id con formato inválido para UUID: para el caller es lo mismo que no existir.
		if isInvalidUUID(err) {
			return search.Session{}, search.ErrSessionNotFound
		}
		return search.Session{}, err
	}
	s.Kind = animals.Status(kind)

	var f filtersJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f); err != nil {
			return search.Session{}, err
		}
	}
	s.Filters = fromFiltersJSON(f)

	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM search_sessions WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return search.ErrSessionNotFound
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return search.ErrSessionNotFound
	}
	return nil
}

func toFiltersJSON(f search.FilterState) filtersJSON {
	return filtersJSON{
		Breed:      f.Breed,
		Color:      f.Color,
		EyeColor:   f.EyeColor,
		PostalCode: f.PostalCode,
		Location: locationJSON{
			Latitude:   f.Location.Latitude,
			Longitude:  f.Location.Longitude,
			Radius:     f.Location.Radius,
			Address:    f.Location.Address,
			City:       f.Location.City,
			PostalCode: f.Location.PostalCode,
		},
	}
}

func fromFiltersJSON(f filtersJSON) search.FilterState {
	out := search.DefaultFilters(f.Location.Radius)
	out.Breed = f.Breed
	out.Color = f.Color
	out.EyeColor = f.EyeColor
	out.PostalCode = f.PostalCode
	out.Location.Latitude = f.Location.Latitude
	out.Location.Longitude = f.Location.Longitude
	out.Location.Address = f.Location.Address
	out.Location.City = f.Location.City
	out.Location.PostalCode = f.Location.PostalCode
	return out
}

// locationCell: geohash de la ubicación del filtro, NULL si no hay coordenadas.
func locationCell(f search.FilterState) sql.NullString {
	p := f.Point()
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: geo.Cell(*p, geo.DefaultCellPrecision), Valid: true}
}

func isInvalidUUID(err error) bool {
	return strings.Contains(err.Error(), "invalid input syntax for type uuid")
}
