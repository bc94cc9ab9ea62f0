package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/domain/search"
)

func TestFiltersJSONRoundTripKeepsLocation(t *testing.T) {
	in := search.WithPlace(search.DefaultFilters(15), 50.85, 4.35, "Rue Neuve", "Bruxelles", "1000")
	in.Breed = "Chartreux"

	out := fromFiltersJSON(toFiltersJSON(in))

	if out.Breed != "Chartreux" || out.Location.Radius != 15 || out.Location.City != "Bruxelles" {
		t.Fatalf("unexpected filters %+v", out)
	}
	if out.Location.Latitude == nil || *out.Location.Latitude != 50.85 {
		t.Fatalf("latitude lost: %+v", out.Location)
	}
}

func TestFiltersJSONMissingRadiusUsesDefault(t *testing.T) {
	out := fromFiltersJSON(filtersJSON{PostalCode: "1000"})
	if out.Location.Radius != search.DefaultRadiusKm {
		t.Fatalf("expected default radius, got %v", out.Location.Radius)
	}
}

func TestLocationCell(t *testing.T) {
	if c := locationCell(search.DefaultFilters(0)); c.Valid {
		t.Fatalf("expected NULL cell without coordinates")
	}
	c := locationCell(search.WithPlace(search.DefaultFilters(0), 50.85, 4.35, "", "", ""))
	if !c.Valid || len(c.String) != 5 {
		t.Fatalf("unexpected cell %+v", c)
	}
}

// Requiere TEST_DB_DSN apuntando a un Postgres descartable.
func TestSessionsRepoIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := Open(dsn, Pool{AppName: "lost-found-search-test"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewSessionsRepo(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s := search.Session{
		ID:        uuid.NewString(),
		Kind:      animals.StatusFound,
		Filters:   search.WithPlace(search.DefaultFilters(0), 50.46, 4.87, "Namur", "Namur", "5000"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Filters.Color = "Noir"
	s.UpdatedAt = now.Add(time.Minute)
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Kind != animals.StatusFound || got.Filters.Color != "Noir" || !got.Filters.HasCoordinates() {
		t.Fatalf("unexpected session %+v", got)
	}

	s.Filters.Breed = "Beagle"
	if err := repo.UpdateFilters(ctx, s.ID, s.Filters, now.Add(2*time.Minute)); err != nil {
		t.Fatalf("update filters: %v", err)
	}
	if got, _ := repo.Get(ctx, s.ID); got.Filters.Breed != "Beagle" {
		t.Fatalf("expected updated breed, got %+v", got.Filters)
	}

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.UpdateFilters(ctx, s.ID, s.Filters, now); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found updating a deleted session, got %v", err)
	}
	if _, err := repo.Get(ctx, s.ID); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Get(ctx, "not-a-uuid"); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
}
