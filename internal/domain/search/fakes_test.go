package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/ports/geocoding"
	"lost-found-search/internal/ports/geolocation"
)

func ptr(v float64) *float64 { return &v }

func record(id, breed string, lat, lon *float64, postal string) animals.StatusRecord {
	return animals.StatusRecord{
		StatusID: "st-" + id,
		Status:   animals.StatusLost,
		Location: &animals.Location{Latitude: lat, Longitude: lon, PostalCode: postal},
		Animal:   animals.Animal{ID: id, Breed: breed},
	}
}

// fakeCatalog: listas y coincidencias configurables, cuenta llamadas.
type fakeCatalog struct {
	mu sync.Mutex

	lists   map[animals.Status][]animals.StatusRecord
	listErr error
	// listGate, si no es nil, bloquea ListByStatus hasta que se cierre.
	listGate chan struct{}

	matches    map[string][]animals.MatchCandidate
	matchErr   map[string]error
	matchCalls []string
	matchDirs  []animals.Direction
	// onMatch se llama durante cada PotentialMatches (para inspeccionar estado en vuelo).
	onMatch func(id string)

	listCalls  int
	scoreCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		lists:    map[animals.Status][]animals.StatusRecord{},
		matches:  map[string][]animals.MatchCandidate{},
		matchErr: map[string]error{},
	}
}

func (c *fakeCatalog) ListByStatus(ctx context.Context, status animals.Status) ([]animals.StatusRecord, error) {
	c.mu.Lock()
	c.listCalls++
	gate := c.listGate
	err := c.listErr
	out := c.lists[status]
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fakeCatalog) PotentialMatches(ctx context.Context, animalID string, dir animals.Direction) ([]animals.MatchCandidate, error) {
	c.mu.Lock()
	c.matchCalls = append(c.matchCalls, animalID)
	c.matchDirs = append(c.matchDirs, dir)
	hook := c.onMatch
	out := c.matches[animalID]
	err := c.matchErr[animalID]
	c.mu.Unlock()

	if hook != nil {
		hook(animalID)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fakeCatalog) ScoreCandidates(ctx context.Context, target animals.Animal, dir animals.Direction, maxResults int) ([]animals.MatchCandidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scoreCalls++
	out := make([]animals.MatchCandidate, 0, maxResults)
	for i := 0; i < maxResults && i < 3; i++ {
		out = append(out, animals.MatchCandidate{MatchScore: float64(90 - i)})
	}
	return out, nil
}

func (c *fakeCatalog) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.matchCalls...)
}

func (c *fakeCatalog) listCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listCalls
}

func candidates(n int) []animals.MatchCandidate {
	return make([]animals.MatchCandidate, n)
}

// fakeGeocoder devuelve lo configurado y registra consultas.
type fakeGeocoder struct {
	mu          sync.Mutex
	reverse     *geocoding.Place
	reverseErr  error
	suggestions []geocoding.Place
	queries     []string
}

func (g *fakeGeocoder) Reverse(ctx context.Context, longitude, latitude float64) (*geocoding.Place, error) {
	if g.reverseErr != nil {
		return nil, &geocoding.Error{Op: "reverse", Err: g.reverseErr}
	}
	return g.reverse, nil
}

func (g *fakeGeocoder) Forward(ctx context.Context, query string) (*geocoding.Place, error) {
	return nil, nil
}

func (g *fakeGeocoder) Suggest(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queries = append(g.queries, query)
	return g.suggestions, nil
}

func (g *fakeGeocoder) suggestQueries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.queries...)
}

// fakeSource devuelve una posición fija o un error; si block, espera al ctx.
type fakeSource struct {
	pos   geolocation.Position
	err   error
	block bool

	mu   sync.Mutex
	opts []geolocation.Options
}

func (s *fakeSource) CurrentPosition(ctx context.Context, opts geolocation.Options) (geolocation.Position, error) {
	s.mu.Lock()
	s.opts = append(s.opts, opts)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return geolocation.Position{}, ctx.Err()
	}
	if s.err != nil {
		return geolocation.Position{}, s.err
	}
	return s.pos, nil
}

// fakeSessionRepo es un repositorio en memoria mínimo.
// updateGate/getGate, si no son nil, bloquean la próxima llamada (una sola vez)
// hasta que se cierren; started avisa cuando la llamada quedó bloqueada.
type fakeSessionRepo struct {
	mu        sync.Mutex
	byID      map[string]Session
	saves     int
	updates   int
	saveErr   error
	updateErr error

	updateGate chan struct{}
	getGate    chan struct{}
	started    chan struct{}
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: map[string]Session{}}
}

func (r *fakeSessionRepo) Save(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) UpdateFilters(ctx context.Context, id string, f FilterState, at time.Time) error {
	r.mu.Lock()
	gate := r.updateGate
	r.updateGate = nil
	r.mu.Unlock()
	r.wait(gate)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	s, ok := r.byID[id]
	if !ok {
		return ErrSessionNotFound
	}
	r.updates++
	s.Filters = f
	s.UpdatedAt = at
	r.byID[id] = s
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	s, ok := r.byID[id]
	gate := r.getGate
	r.getGate = nil
	r.mu.Unlock()

	// La fila ya se leyó; el gate simula la respuesta demorada.
	r.wait(gate)

	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeSessionRepo) stored(id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *fakeSessionRepo) wait(gate chan struct{}) {
	if gate == nil {
		return
	}
	if r.started != nil {
		r.started <- struct{}{}
	}
	<-gate
}

var errBoom = errors.New("boom")

func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
