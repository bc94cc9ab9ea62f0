package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/logger"
	"lost-found-search/internal/ports/geocoding"
	"lost-found-search/internal/ports/geolocation"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
)

const (
	defaultRefreshConcurrency = 4
	defaultMaxScoreResults    = 10
	maxScoreResults           = 50
	persistTimeout            = 3 * time.Second
	closedRetention           = 10 * time.Minute
)

// PositionSources entrega una fuente de posición por sesión y recibe lo que reporta el dispositivo.
type PositionSources interface {
	For(sessionID string) geolocation.Source
	Report(sessionID string, p geolocation.Position)
	Fail(sessionID string, code geolocation.Code, message string)
	Forget(sessionID string)
}

type ServiceDeps struct {
	Catalog   animals.Catalog
	Geocoder  geocoding.Geocoder
	Positions PositionSources
	Logger    logger.Logger
}

type Options struct {
	DefaultRadiusKm      float64
	GeolocationTimeout   time.Duration
	AutocompleteDebounce time.Duration
	RefreshConcurrency   int
}

// Service administra los stores vivos, uno por sesión de vista.
type Service struct {
	repo    SessionRepository
	catalog animals.Catalog
	deps    ServiceDeps
	opts    Options
	log     logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Store
	// closed: ids cerrados hace poco. Un Get que leyó el repo antes del Close no la reabre.
	closed map[string]time.Time
}

func NewService(repo SessionRepository, deps ServiceDeps, opts Options) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.RefreshConcurrency <= 0 {
		opts.RefreshConcurrency = defaultRefreshConcurrency
	}
	if opts.DefaultRadiusKm <= 0 {
		opts.DefaultRadiusKm = DefaultRadiusKm
	}

	var catalog animals.Catalog
	if deps.Catalog != nil {
		catalog = &sharedLists{Catalog: deps.Catalog}
	}

	return &Service{
		repo:     repo,
		catalog:  catalog,
		deps:     deps,
		opts:     opts,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Store),
		closed:   make(map[string]time.Time),
	}
}

// Create abre una sesión nueva para la vista kind (LOST o FOUND).
func (s *Service) Create(ctx context.Context, kind animals.Status) (*Store, error) {
	kind = animals.Status(strings.ToUpper(strings.TrimSpace(string(kind))))
	if kind != animals.StatusLost && kind != animals.StatusFound {
		return nil, ErrInvalidInput
	}

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		Filters:   DefaultFilters(s.opts.DefaultRadiusKm),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}

	st, err := s.open(sess)
	if err != nil {
		return nil, err
	}
	s.log.Info("search session created", map[string]any{"session_id": sess.ID, "kind": string(kind)})
	return st, nil
}

// Get devuelve el store vivo o lo reconstruye desde el repositorio con sus filtros.
func (s *Service) Get(ctx context.Context, id string) (*Store, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	if st, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	st, err := s.open(sess)
	if err != nil {
		return nil, err
	}
	s.log.Info("search session restored", map[string]any{"session_id": id})
	return st, nil
}

// Close cierra el store y borra la sesión.
func (s *Service) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	st, ok := s.sessions[id]
	delete(s.sessions, id)
	s.markClosedLocked(id)
	s.mu.Unlock()

	if ok {
		st.Close()
	}
	if s.deps.Positions != nil {
		s.deps.Positions.Forget(id)
	}
	return s.repo.Delete(ctx, id)
}

// RefreshAll refresca la lista de todas las sesiones vivas, con concurrencia acotada.
// Sesiones del mismo tipo comparten la llamada remota. Devuelve cuántas se refrescaron.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	stores := make([]*Store, 0, len(s.sessions))
	for _, st := range s.sessions {
		stores = append(stores, st)
	}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.RefreshConcurrency)
	for _, st := range stores {
		g.Go(func() error {
			st.FetchList(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(stores), ctx.Err()
}

// ReportPosition registra una posición enviada por el dispositivo de la sesión.
func (s *Service) ReportPosition(ctx context.Context, id string, p geolocation.Position) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if s.deps.Positions == nil {
		return ErrGeolocationUnsupported
	}
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidInput
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = s.now()
	}
	s.deps.Positions.Report(id, p)
	return nil
}

// ReportPositionError registra un error del dispositivo (permiso denegado, etc.).
func (s *Service) ReportPositionError(ctx context.Context, id string, code geolocation.Code, message string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if s.deps.Positions == nil {
		return ErrGeolocationUnsupported
	}
	switch code {
	case geolocation.CodePermissionDenied, geolocation.CodePositionUnavailable, geolocation.CodeTimeout:
	default:
		return ErrInvalidInput
	}
	s.deps.Positions.Fail(id, code, message)
	return nil
}

// FindPotentialMatches no depende de una sesión. Ante error devuelve vacío.
func (s *Service) FindPotentialMatches(ctx context.Context, animalID string, dir animals.Direction) []animals.MatchCandidate {
	return findPotentialMatches(ctx, s.catalog, s.log, strings.TrimSpace(animalID), dir)
}

// ScoreCandidates puntúa un animal (todavía sin reporte) contra el pool opuesto.
func (s *Service) ScoreCandidates(ctx context.Context, target animals.Animal, dir animals.Direction, maxResults int) ([]animals.MatchCandidate, error) {
	if _, ok := animals.ParseDirection(string(dir)); !ok {
		return nil, ErrInvalidInput
	}
	if maxResults <= 0 {
		maxResults = defaultMaxScoreResults
	}
	if maxResults > maxScoreResults {
		maxResults = maxScoreResults
	}
	if s.catalog == nil {
		return nil, animals.ErrNoCatalog
	}
	out, err := s.catalog.ScoreCandidates(ctx, target, dir, maxResults)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []animals.MatchCandidate{}
	}
	return out, nil
}

// Shutdown cierra todos los stores vivos. Las sesiones persistidas quedan.
func (s *Service) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Store)
	s.mu.Unlock()

	for _, st := range sessions {
		st.Close()
	}
}

func (s *Service) open(sess Session) (*Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Otro request pudo haberla abierto mientras leíamos el repo.
	if st, ok := s.sessions[sess.ID]; ok {
		return st, nil
	}
	if _, gone := s.closed[sess.ID]; gone {
		return nil, ErrSessionNotFound
	}

	var positions geolocation.Source
	if s.deps.Positions != nil {
		positions = s.deps.Positions.For(sess.ID)
	}

	filters := sess.Filters
	id := sess.ID

	var (
		st        *Store
		persistMu sync.Mutex
	)
	st = NewStore(Deps{
		Catalog:   s.catalog,
		Geocoder:  s.deps.Geocoder,
		Positions: positions,
		Logger:    s.log,
	}, StoreOptions{
		ID:                   id,
		Kind:                 sess.Kind,
		DefaultRadiusKm:      s.opts.DefaultRadiusKm,
		GeolocationTimeout:   s.opts.GeolocationTimeout,
		AutocompleteDebounce: s.opts.AutocompleteDebounce,
		Filters:              &filters,
		// Escrituras de a una por sesión, siempre con los filtros vigentes:
		// la última en llegar nunca es un estado viejo.
		OnFiltersChanged: func(FilterState) {
			persistMu.Lock()
			defer persistMu.Unlock()
			s.persist(id, st.Filters())
		},
	})

	s.sessions[sess.ID] = st
	return st, nil
}

// persist actualiza los filtros de una sesión existente. Nunca recrea una sesión cerrada.
func (s *Service) persist(id string, f FilterState) {
	s.mu.Lock()
	_, gone := s.closed[id]
	s.mu.Unlock()
	if gone {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := s.repo.UpdateFilters(ctx, id, f, s.now())
	switch {
	case err == nil:
	case errors.Is(err, ErrSessionNotFound):
		s.log.Debug("session gone, filters not persisted", map[string]any{"session_id": id})
	default:
		s.log.Warn("persist session filters failed", map[string]any{
			"session_id": id,
			"error":      err,
		})
	}
}

func (s *Service) markClosedLocked(id string) {
	now := s.now()
	for k, at := range s.closed {
		if now.Sub(at) > closedRetention {
			delete(s.closed, k)
		}
	}
	s.closed[id] = now
}

// sharedLists hace que pedidos simultáneos de la misma lista compartan una llamada remota.
type sharedLists struct {
	animals.Catalog
	group singleflight.Group
}

func (c *sharedLists) ListByStatus(ctx context.Context, status animals.Status) ([]animals.StatusRecord, error) {
	ch := c.group.DoChan(string(status), func() (any, error) {
		// Sin cancelación: el resultado lo esperan otros callers.
		return c.Catalog.ListByStatus(context.WithoutCancel(ctx), status)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		records, _ := res.Val.([]animals.StatusRecord)
		return records, nil
	}
}
