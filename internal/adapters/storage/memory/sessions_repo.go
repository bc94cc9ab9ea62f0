package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"lost-found-search/internal/domain/search"
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]search.Session
}

func NewSessionRepo() search.SessionRepository {
	return &sessionRepo{
		byID: make(map[string]search.Session),
	}
}

// Save inserta o reemplaza. CreatedAt se conserva del primer guardado.
func (r *sessionRepo) Save(ctx context.Context, s search.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	if prev, ok := r.byID[s.ID]; ok && !prev.CreatedAt.IsZero() {
		s.CreatedAt = prev.CreatedAt
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) UpdateFilters(ctx context.Context, id string, f search.FilterState, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return search.ErrSessionNotFound
	}
	s.Filters = f
	s.UpdatedAt = updatedAt
	r.byID[id] = s
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (search.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return search.Session{}, search.ErrSessionNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return search.ErrSessionNotFound
	}
	delete(r.byID, id)
	return nil
}
