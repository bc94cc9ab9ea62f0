package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/domain/search"
)

func TestSessionRepo(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := search.Session{ID: "s1", Kind: animals.StatusLost, Filters: search.DefaultFilters(0), CreatedAt: created, UpdatedAt: created}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Filters.Breed = "Beagle"
	s.CreatedAt = time.Time{}
	s.UpdatedAt = created.Add(time.Hour)
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filters.Breed != "Beagle" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, "s1"); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if err := repo.Save(ctx, search.Session{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestSessionRepoUpdateFiltersDoesNotRecreate(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	f := search.DefaultFilters(0)
	f.Color = "Roux"
	if err := repo.UpdateFilters(ctx, "gone", f, at); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("expected not found for missing session, got %v", err)
	}
	if _, err := repo.Get(ctx, "gone"); !errors.Is(err, search.ErrSessionNotFound) {
		t.Fatalf("update must not create the session, got %v", err)
	}

	if err := repo.Save(ctx, search.Session{ID: "s1", Kind: animals.StatusLost, CreatedAt: at, UpdatedAt: at}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.UpdateFilters(ctx, "s1", f, at.Add(time.Minute)); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.Get(ctx, "s1")
	if got.Filters.Color != "Roux" || got.Kind != animals.StatusLost || !got.UpdatedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("unexpected session %+v", got)
	}
}
