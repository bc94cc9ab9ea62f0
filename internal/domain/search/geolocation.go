package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"lost-found-search/internal/ports/geolocation"
)

const DefaultGeolocationTimeout = 5 * time.Second

// ErrGeolocationUnsupported: el store no tiene fuente de posición configurada.
var ErrGeolocationUnsupported = &geolocation.Error{
	Code:    geolocation.CodePositionUnavailable,
	Message: "geolocation not supported",
}

// GeolocationProvider envuelve una geolocation.Source con las opciones fijas del front
// (alta precisión, timeout, sin cache) y guarda el estado que muestra la UI.
// Vive lo mismo que su dueño: cancelado life, ninguna resolución toca el estado.
type GeolocationProvider struct {
	source geolocation.Source
	opts   geolocation.Options
	life   context.Context

	mu       sync.Mutex
	inFlight int
	errMsg   string
}

func NewGeolocationProvider(life context.Context, source geolocation.Source, timeout time.Duration) *GeolocationProvider {
	if timeout <= 0 {
		timeout = DefaultGeolocationTimeout
	}
	return &GeolocationProvider{
		source: source,
		life:   life,
		opts: geolocation.Options{
			HighAccuracy: true,
			Timeout:      timeout,
			MaximumAge:   0,
		},
	}
}

func (p *GeolocationProvider) Options() geolocation.Options { return p.opts }

// CurrentPosition pide una posición. Los errores vuelven clasificados (*geolocation.Error).
func (p *GeolocationProvider) CurrentPosition(ctx context.Context) (geolocation.Position, error) {
	p.mu.Lock()
	if err := p.life.Err(); err != nil {
		p.mu.Unlock()
		return geolocation.Position{}, err
	}
	if p.source == nil {
		p.errMsg = messageFor(geolocation.CodePositionUnavailable)
		p.mu.Unlock()
		return geolocation.Position{}, ErrGeolocationUnsupported
	}
	p.inFlight++
	p.errMsg = ""
	p.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	stop := context.AfterFunc(p.life, cancel)
	pos, err := p.source.CurrentPosition(reqCtx, p.opts)
	stop()
	cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if lerr := p.life.Err(); lerr != nil {
		return geolocation.Position{}, lerr
	}
	p.inFlight--

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return geolocation.Position{}, err
		}
		ge := geolocation.Classify(err)
		p.errMsg = messageFor(ge.Code)
		return geolocation.Position{}, ge
	}

	return pos, nil
}

// Locating es true mientras haya al menos un pedido pendiente.
func (p *GeolocationProvider) Locating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight > 0
}

// Err devuelve el último mensaje de error para el usuario, "" si no hay.
func (p *GeolocationProvider) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

func (p *GeolocationProvider) DismissError() {
	p.mu.Lock()
	p.errMsg = ""
	p.mu.Unlock()
}

// release se llama en el teardown del dueño.
func (p *GeolocationProvider) release() {
	p.mu.Lock()
	p.inFlight = 0
	p.mu.Unlock()
}

func messageFor(code geolocation.Code) string {
	switch code {
	case geolocation.CodePermissionDenied:
		return "Permission de géolocalisation refusée"
	case geolocation.CodeTimeout:
		return "La demande de géolocalisation a expiré"
	default:
		return "Position indisponible"
	}
}
