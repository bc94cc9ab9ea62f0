package devicefix

import (
	"context"
	"errors"
	"sync"
	"time"

	"lost-found-search/internal/ports/geolocation"
)

// Hub recibe las posiciones (o errores) que reporta el dispositivo de cada sesión
// y las entrega a quien las esté esperando.
//
// Un reporte se entrega una sola vez. Sirve si llegó durante la espera o hasta
// opts.Timeout antes del pedido (el fix que el cliente manda junto con el request).
// Con MaximumAge > 0 se puede reusar el último fix entregado.
type Hub struct {
	now func() time.Time

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	pending    *geolocation.Position
	failure    *geolocation.Error
	receivedAt time.Time

	last   *geolocation.Position
	lastAt time.Time

	notify chan struct{}
}

func NewHub() *Hub {
	return &Hub{now: time.Now, slots: make(map[string]*slot)}
}

// For devuelve la geolocation.Source de una sesión.
func (h *Hub) For(sessionID string) geolocation.Source {
	return &Source{hub: h, sessionID: sessionID}
}

func (h *Hub) Report(sessionID string, p geolocation.Position) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.slotLocked(sessionID)
	if p.Timestamp.IsZero() {
		p.Timestamp = h.now()
	}
	s.pending = &p
	s.failure = nil
	s.receivedAt = h.now()
	s.wakeLocked()
}

func (h *Hub) Fail(sessionID string, code geolocation.Code, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.slotLocked(sessionID)
	s.pending = nil
	s.failure = &geolocation.Error{Code: code, Message: message}
	s.receivedAt = h.now()
	s.wakeLocked()
}

// Forget libera el estado de una sesión cerrada. Quien estuviera esperando sigue hasta su timeout.
func (h *Hub) Forget(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.slots[sessionID]; ok {
		s.wakeLocked()
		delete(h.slots, sessionID)
	}
}

func (h *Hub) slotLocked(id string) *slot {
	s, ok := h.slots[id]
	if !ok {
		s = &slot{notify: make(chan struct{})}
		h.slots[id] = s
	}
	return s
}

func (s *slot) wakeLocked() {
	close(s.notify)
	s.notify = make(chan struct{})
}

// Source espera el próximo reporte del dispositivo de una sesión.
type Source struct {
	hub       *Hub
	sessionID string
}

func (src *Source) CurrentPosition(ctx context.Context, opts geolocation.Options) (geolocation.Position, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	h := src.hub
	start := h.now()

	for {
		h.mu.Lock()
		s := h.slotLocked(src.sessionID)
		now := h.now()

		if opts.MaximumAge > 0 && s.last != nil && now.Sub(s.lastAt) <= opts.MaximumAge {
			p := *s.last
			h.mu.Unlock()
			return p, nil
		}

		if s.receivedAt.After(start.Add(-opts.Timeout)) || s.receivedAt.Equal(start) {
			if s.failure != nil {
				err := s.failure
				s.failure = nil
				h.mu.Unlock()
				return geolocation.Position{}, err
			}
			if s.pending != nil {
				p := *s.pending
				s.pending = nil
				s.last = &p
				s.lastAt = now
				h.mu.Unlock()
				return p, nil
			}
		}

		wait := s.notify
		h.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return geolocation.Position{}, geolocation.ErrTimeout
			}
			return geolocation.Position{}, ctx.Err()
		}
	}
}
