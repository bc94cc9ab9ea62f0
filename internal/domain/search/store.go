package search

import (
	"context"
	"sync"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/geo"
	"lost-found-search/internal/platform/logger"
	"lost-found-search/internal/ports/geocoding"
	"lost-found-search/internal/ports/geolocation"
)

// PlaceholderAddress se usa cuando la posición no se pudo resolver a una dirección.
const PlaceholderAddress = "Position actuelle"

const reverseGeocodeTimeout = 10 * time.Second

// ListStatus: idle -> loading -> loaded | errored.
// errored filtra igual que loaded([]); solo cambia el mensaje de la UI.
type ListStatus string

const (
	ListIdle    ListStatus = "idle"
	ListLoading ListStatus = "loading"
	ListLoaded  ListStatus = "loaded"
	ListErrored ListStatus = "errored"
)

// LocationInfo es lo que devuelve UseCurrentLocation.
type LocationInfo = geocoding.Place

// Deps son los colaboradores de un Store. Geocoder y Positions pueden ser nil.
type Deps struct {
	Catalog   animals.Catalog
	Geocoder  geocoding.Geocoder
	Positions geolocation.Source
	Logger    logger.Logger
}

type StoreOptions struct {
	ID                   string
	Kind                 animals.Status // LOST o FOUND
	DefaultRadiusKm      float64
	GeolocationTimeout   time.Duration
	AutocompleteDebounce time.Duration
	// Filters iniciales (sesión recuperada). nil = defaults.
	Filters *FilterState
	// OnFiltersChanged se llama fuera del lock después de cada cambio de filtros.
	OnFiltersChanged func(FilterState)
}

// Store es el estado de una vista de búsqueda (perdidos o encontrados):
// lista cruda, filtros, lista filtrada, conteos de coincidencias y estado de ubicación.
// Es seguro para uso concurrente.
type Store struct {
	id        string
	kind      animals.Status
	direction animals.Direction
	radius    float64

	catalog  animals.Catalog
	geocoder geocoding.Geocoder
	log      logger.Logger

	counts       *MatchCountAggregator
	geo          *GeolocationProvider
	autocomplete *AddressAutocomplete

	life   context.Context
	cancel context.CancelFunc

	onFiltersChanged func(FilterState)

	mu        sync.Mutex
	status    ListStatus
	lastErr   string
	fetchSeq  uint64
	raw       []animals.StatusRecord
	filtered  []animals.StatusRecord
	filters   FilterState
	updatedAt time.Time
}

func NewStore(deps Deps, opts StoreOptions) *Store {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"session_id": opts.ID, "kind": string(opts.Kind)})

	radius := opts.DefaultRadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	filters := DefaultFilters(radius)
	if opts.Filters != nil {
		filters = *opts.Filters
	}

	life, cancel := context.WithCancel(context.Background())

	return &Store{
		id:               opts.ID,
		kind:             opts.Kind,
		direction:        animals.DirectionFor(opts.Kind),
		radius:           radius,
		catalog:          deps.Catalog,
		geocoder:         deps.Geocoder,
		log:              log,
		counts:           NewMatchCountAggregator(log),
		geo:              NewGeolocationProvider(life, deps.Positions, opts.GeolocationTimeout),
		autocomplete:     NewAddressAutocomplete(life, deps.Geocoder, opts.AutocompleteDebounce, log),
		life:             life,
		cancel:           cancel,
		onFiltersChanged: opts.OnFiltersChanged,
		status:           ListIdle,
		raw:              []animals.StatusRecord{},
		filtered:         []animals.StatusRecord{},
		filters:          filters,
		updatedAt:        time.Now(),
	}
}

func (s *Store) ID() string                   { return s.id }
func (s *Store) Kind() animals.Status         { return s.kind }
func (s *Store) Direction() animals.Direction { return s.direction }

// Done se cierra cuando el store se cierra.
func (s *Store) Done() <-chan struct{} { return s.life.Done() }

// FetchList trae la lista cruda. Nunca falla hacia afuera: ante error las listas quedan
// vacías y el estado en errored. Cada refresco invalida el cache de conteos.
func (s *Store) FetchList(ctx context.Context) {
	s.mu.Lock()
	if s.life.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.fetchSeq++
	seq := s.fetchSeq
	s.status = ListLoading
	s.mu.Unlock()

	ctx, stop := s.bind(ctx)
	defer stop()

	var (
		records []animals.StatusRecord
		err     error
	)
	if s.catalog == nil {
		err = animals.ErrNoCatalog
	} else {
		records, err = s.catalog.ListByStatus(ctx, s.kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Cerrado o pisado por un fetch más nuevo.
	if s.life.Err() != nil || seq != s.fetchSeq {
		return
	}

	if err != nil {
		s.log.Error("list fetch failed", map[string]any{"error": err})
		s.raw = []animals.StatusRecord{}
		s.filtered = []animals.StatusRecord{}
		s.status = ListErrored
		s.lastErr = err.Error()
	} else {
		if records == nil {
			records = []animals.StatusRecord{}
		}
		s.raw = records
		s.filtered = ApplyFilters(s.raw, s.filters)
		s.status = ListLoaded
		s.lastErr = ""
		s.log.Debug("list loaded", map[string]any{"raw": len(s.raw), "filtered": len(s.filtered)})
	}
	s.updatedAt = time.Now()
	s.counts.Reset()
}

// SetFilter aplica un cambio de campo y recalcula la lista filtrada.
func (s *Store) SetFilter(field Field, value string) (FilterState, error) {
	s.mu.Lock()
	if err := s.life.Err(); err != nil {
		s.mu.Unlock()
		return FilterState{}, err
	}
	next, err := SetFilter(s.filters, field, value)
	if err != nil {
		cur := s.filters
		s.mu.Unlock()
		return cur, err
	}
	s.applyLocked(next)
	s.mu.Unlock()

	s.filtersChanged(next)
	return next, nil
}

// ResetFilters vuelve a los defaults; la lista filtrada pasa a ser la cruda.
func (s *Store) ResetFilters() FilterState {
	s.mu.Lock()
	if s.life.Err() != nil {
		cur := s.filters
		s.mu.Unlock()
		return cur
	}
	next := DefaultFilters(s.radius)
	s.filters = next
	s.filtered = append(make([]animals.StatusRecord, 0, len(s.raw)), s.raw...)
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.filtersChanged(next)
	return next
}

// UseCurrentLocation pide la posición del dispositivo, la resuelve a una dirección
// y la aplica como filtro de ubicación. Si la posición falla, los filtros no cambian.
// Si el reverse geocoding falla o no encuentra nada, se usa PlaceholderAddress.
func (s *Store) UseCurrentLocation(ctx context.Context) (LocationInfo, error) {
	ctx, stop := s.bind(ctx)
	defer stop()

	pos, err := s.geo.CurrentPosition(ctx)
	if err != nil {
		return LocationInfo{}, err
	}

	info := LocationInfo{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Address:   PlaceholderAddress,
	}

	if s.geocoder != nil {
		rctx, cancel := context.WithTimeout(ctx, reverseGeocodeTimeout)
		place, gerr := s.geocoder.Reverse(rctx, pos.Longitude, pos.Latitude)
		cancel()
		switch {
		case gerr != nil:
			s.log.Warn("reverse geocoding failed", map[string]any{"error": gerr})
		case place != nil:
			if place.Address != "" {
				info.Address = place.Address
			}
			info.City = place.City
			info.PostalCode = place.PostalCode
		}
	}

	s.mu.Lock()
	if err := s.life.Err(); err != nil {
		s.mu.Unlock()
		return LocationInfo{}, err
	}
	next := WithPlace(s.filters, info.Latitude, info.Longitude, info.Address, info.City, info.PostalCode)
	s.applyLocked(next)
	s.mu.Unlock()

	s.log.Info("current location applied", map[string]any{
		"cell": geo.Cell(geo.Point{Latitude: info.Latitude, Longitude: info.Longitude}, geo.DefaultCellPrecision),
	})
	s.filtersChanged(next)
	return info, nil
}

// ClearCurrentLocation limpia solo la rama de ubicación.
func (s *Store) ClearCurrentLocation() FilterState {
	s.mu.Lock()
	if s.life.Err() != nil {
		cur := s.filters
		s.mu.Unlock()
		return cur
	}
	next := ClearLocation(s.filters)
	s.applyLocked(next)
	s.mu.Unlock()

	s.filtersChanged(next)
	return next
}

// FindPotentialMatches: ante error devuelve vacío y loguea.
func (s *Store) FindPotentialMatches(ctx context.Context, animalID string, dir animals.Direction) []animals.MatchCandidate {
	return findPotentialMatches(ctx, s.catalog, s.log, animalID, dir)
}

// FillMatchCounts llena los conteos de la lista filtrada actual, de a uno.
// Bloquea hasta terminar la pasada; devuelve cuántos ids se pidieron.
func (s *Store) FillMatchCounts(ctx context.Context) int {
	s.mu.Lock()
	if s.life.Err() != nil || s.catalog == nil {
		s.mu.Unlock()
		return 0
	}
	ids := make([]string, 0, len(s.filtered))
	for _, r := range s.filtered {
		ids = append(ids, r.Animal.ID)
	}
	dir := s.direction
	s.mu.Unlock()

	ctx, stop := s.bind(ctx)
	defer stop()

	return s.counts.Fill(ctx, ids, func(ctx context.Context, animalID string) ([]animals.MatchCandidate, error) {
		return s.catalog.PotentialMatches(ctx, animalID, dir)
	})
}

// SubscribeCounts devuelve los snapshots de conteos a medida que avanzan.
func (s *Store) SubscribeCounts() (<-chan CountsSnapshot, func()) {
	return s.counts.Subscribe()
}

func (s *Store) QueryAddress(q string) { s.autocomplete.Query(q) }

func (s *Store) Suggestions() []geocoding.Place { return s.autocomplete.Suggestions() }

// SelectPlace aplica una sugerencia como filtro de ubicación.
func (s *Store) SelectPlace(p geocoding.Place) FilterState {
	s.autocomplete.Clear()

	s.mu.Lock()
	if s.life.Err() != nil {
		cur := s.filters
		s.mu.Unlock()
		return cur
	}
	next := WithPlace(s.filters, p.Latitude, p.Longitude, p.Address, p.City, p.PostalCode)
	s.applyLocked(next)
	s.mu.Unlock()

	s.filtersChanged(next)
	return next
}

func (s *Store) DismissGeolocationError() { s.geo.DismissError() }

// Snapshot es una copia consistente del estado para la UI.
type Snapshot struct {
	ID          string
	Kind        animals.Status
	Direction   animals.Direction
	Status      ListStatus
	Error       string
	Filters     FilterState
	RawCount    int
	Filtered    []animals.StatusRecord
	Counts      CountsSnapshot
	Locating    bool
	GeoError    string
	Suggestions []geocoding.Place
	Searching   bool
	UpdatedAt   time.Time
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:        s.id,
		Kind:      s.kind,
		Direction: s.direction,
		Status:    s.status,
		Error:     s.lastErr,
		Filters:   s.filters,
		RawCount:  len(s.raw),
		Filtered:  append(make([]animals.StatusRecord, 0, len(s.filtered)), s.filtered...),
		UpdatedAt: s.updatedAt,
	}
	s.mu.Unlock()

	snap.Counts = s.counts.Snapshot()
	snap.Locating = s.geo.Locating()
	snap.GeoError = s.geo.Err()
	snap.Suggestions = s.autocomplete.Suggestions()
	snap.Searching = s.autocomplete.Searching()
	return snap
}

func (s *Store) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Close es el teardown: cancela lo que esté en vuelo, para el debounce y cierra suscripciones.
// Resultados que lleguen después no modifican nada.
func (s *Store) Close() {
	s.mu.Lock()
	if s.life.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.mu.Unlock()

	s.autocomplete.Close()
	s.counts.Close()
	s.geo.release()
}

func (s *Store) applyLocked(next FilterState) {
	s.filters = next
	s.filtered = ApplyFilters(s.raw, next)
	s.updatedAt = time.Now()
}

func (s *Store) filtersChanged(f FilterState) {
	if s.onFiltersChanged != nil {
		s.onFiltersChanged(f)
	}
}

// bind deriva un ctx que además se cancela al cerrar el store.
func (s *Store) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func findPotentialMatches(ctx context.Context, c animals.Catalog, log logger.Logger, animalID string, dir animals.Direction) []animals.MatchCandidate {
	if c == nil {
		return []animals.MatchCandidate{}
	}
	out, err := c.PotentialMatches(ctx, animalID, dir)
	if err != nil {
		log.Warn("potential matches failed", map[string]any{
			"animal_id": animalID,
			"direction": string(dir),
			"error":     err,
		})
		return []animals.MatchCandidate{}
	}
	if out == nil {
		out = []animals.MatchCandidate{}
	}
	return out
}
