package search

import (
	"context"
	"sync"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/logger"
)

// CountFetcher trae las coincidencias potenciales de un animal. Solo se usa len(resultado).
type CountFetcher func(ctx context.Context, animalID string) ([]animals.MatchCandidate, error)

// CountsSnapshot es una copia del cache de conteos.
// Un id pasa por: ausente -> Queued -> Loading -> Counts.
// Loading tiene a lo sumo un id a la vez (el que está en vuelo).
type CountsSnapshot struct {
	Counts  map[string]int  `json:"counts"`
	Loading map[string]bool `json:"loading"`
	Queued  map[string]bool `json:"queued"`
}

const subscriberBuffer = 16

// MatchCountAggregator llena el cache animalID -> cantidad de coincidencias
// de a un id por vez, publicando un snapshot después de cada id.
type MatchCountAggregator struct {
	log logger.Logger

	mu      sync.Mutex
	counts  map[string]int
	loading map[string]bool
	queued  map[string]bool
	gen     uint64
	closed  bool

	subs   map[int]chan CountsSnapshot
	nextID int
}

func NewMatchCountAggregator(log logger.Logger) *MatchCountAggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &MatchCountAggregator{
		log:     log,
		counts:  map[string]int{},
		loading: map[string]bool{},
		queued:  map[string]bool{},
		subs:    map[int]chan CountsSnapshot{},
	}
}

// Fill procesa los ids sin conteo en orden, uno por vez.
// Devuelve cuántos ids se pidieron en esta pasada (0 si se salteó o no había faltantes).
// Si ctx se cancela, la pasada se corta y no quedan flags colgados.
func (a *MatchCountAggregator) Fill(ctx context.Context, ids []string, fetch CountFetcher) int {
	a.mu.Lock()
	if a.closed || a.busyLocked() {
		a.mu.Unlock()
		return 0
	}

	missing := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := a.counts[id]; ok {
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		a.mu.Unlock()
		return 0
	}

	for _, id := range missing {
		a.queued[id] = true
	}
	gen := a.gen
	a.publishLocked()
	a.mu.Unlock()

	fetched := 0
	for i, id := range missing {
		if ctx.Err() != nil {
			a.abandon(gen, missing[i:])
			return fetched
		}

		a.mu.Lock()
		if a.closed || a.gen != gen {
			a.mu.Unlock()
			return fetched
		}
		delete(a.queued, id)
		a.loading[id] = true
		a.publishLocked()
		a.mu.Unlock()

		results, err := fetch(ctx, id)
		fetched++

		count := len(results)
		if err != nil {
			a.log.Warn("match count fetch failed", map[string]any{
				"animal_id": id,
				"error":     err,
			})
			count = 0
		}

		a.mu.Lock()
		if a.closed || a.gen != gen {
			a.mu.Unlock()
			return fetched
		}
		delete(a.loading, id)
		if ctx.Err() == nil {
			a.counts[id] = count
		}
		a.publishLocked()
		a.mu.Unlock()
	}

	return fetched
}

// Reset vacía el cache (se llama al refrescar la lista). Una pasada en curso queda sin efecto.
func (a *MatchCountAggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.counts = map[string]int{}
	a.loading = map[string]bool{}
	a.queued = map[string]bool{}
	a.publishLocked()
}

func (a *MatchCountAggregator) Snapshot() CountsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Subscribe devuelve un canal con los snapshots publicados y la función para desuscribirse.
// Un suscriptor lento pierde snapshots intermedios, nunca bloquea la pasada.
func (a *MatchCountAggregator) Subscribe() (<-chan CountsSnapshot, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan CountsSnapshot, subscriberBuffer)
	if a.closed {
		close(ch)
		return ch, func() {}
	}

	id := a.nextID
	a.nextID++
	a.subs[id] = ch
	ch <- a.snapshotLocked()

	return ch, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if sub, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(sub)
		}
	}
}

// Close limpia los flags y cierra las suscripciones. Es idempotente.
func (a *MatchCountAggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.gen++
	a.loading = map[string]bool{}
	a.queued = map[string]bool{}
	for id, ch := range a.subs {
		close(ch)
		delete(a.subs, id)
	}
}

func (a *MatchCountAggregator) busyLocked() bool {
	return len(a.loading) > 0 || len(a.queued) > 0
}

func (a *MatchCountAggregator) abandon(gen uint64, ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		return
	}
	for _, id := range ids {
		delete(a.queued, id)
		delete(a.loading, id)
	}
	if !a.closed {
		a.publishLocked()
	}
}

func (a *MatchCountAggregator) publishLocked() {
	if len(a.subs) == 0 {
		return
	}
	snap := a.snapshotLocked()
	for _, ch := range a.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (a *MatchCountAggregator) snapshotLocked() CountsSnapshot {
	snap := CountsSnapshot{
		Counts:  make(map[string]int, len(a.counts)),
		Loading: make(map[string]bool, len(a.loading)),
		Queued:  make(map[string]bool, len(a.queued)),
	}
	for k, v := range a.counts {
		snap.Counts[k] = v
	}
	for k, v := range a.loading {
		snap.Loading[k] = v
	}
	for k, v := range a.queued {
		snap.Queued[k] = v
	}
	return snap
}
