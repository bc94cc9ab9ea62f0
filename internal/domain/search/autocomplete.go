package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"lost-found-search/internal/platform/logger"
	"lost-found-search/internal/ports/geocoding"
)

const (
	minQueryLength  = 3
	suggestionLimit = 5
	suggestTimeout  = 10 * time.Second
)

// AddressAutocomplete sugiere direcciones mientras el usuario escribe.
// Solo la última consulta de una ráfaga llega al geocoder.
type AddressAutocomplete struct {
	geocoder geocoding.Geocoder
	life     context.Context
	log      logger.Logger
	debounce *debouncer

	mu          sync.Mutex
	seq         uint64
	query       string
	suggestions []geocoding.Place
	searching   bool
	lastErr     string
}

func NewAddressAutocomplete(life context.Context, g geocoding.Geocoder, delay time.Duration, log logger.Logger) *AddressAutocomplete {
	if log == nil {
		log = logger.Nop()
	}
	return &AddressAutocomplete{
		geocoder: g,
		life:     life,
		log:      log,
		debounce: newDebouncer(delay),
	}
}

// Query registra una tecla. Consultas cortas vacían las sugerencias sin llamar al geocoder.
func (a *AddressAutocomplete) Query(q string) {
	q = strings.TrimSpace(q)

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.query = q
	if len([]rune(q)) < minQueryLength || a.geocoder == nil {
		a.suggestions = nil
		a.searching = false
		a.mu.Unlock()
		a.debounce.Cancel()
		return
	}
	a.searching = true
	a.mu.Unlock()

	a.debounce.Trigger(func() { a.run(seq, q) })
}

func (a *AddressAutocomplete) run(seq uint64, q string) {
	if a.life.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(a.life, suggestTimeout)
	defer cancel()

	places, err := a.geocoder.Suggest(ctx, q, suggestionLimit)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Descartar si el dueño se cerró o si ya hubo otra tecla.
	if a.life.Err() != nil || seq != a.seq {
		return
	}
	a.searching = false
	if err != nil {
		a.log.Warn("address suggest failed", map[string]any{"query": q, "error": err})
		a.suggestions = nil
		a.lastErr = err.Error()
		return
	}
	a.lastErr = ""
	a.suggestions = places
}

func (a *AddressAutocomplete) Suggestions() []geocoding.Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]geocoding.Place, len(a.suggestions))
	copy(out, a.suggestions)
	return out
}

func (a *AddressAutocomplete) Searching() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searching
}

// Clear se usa al elegir una sugerencia.
func (a *AddressAutocomplete) Clear() {
	a.mu.Lock()
	a.seq++
	a.query = ""
	a.suggestions = nil
	a.searching = false
	a.mu.Unlock()
	a.debounce.Cancel()
}

func (a *AddressAutocomplete) Close() {
	a.debounce.Close()
	a.mu.Lock()
	a.searching = false
	a.mu.Unlock()
}
