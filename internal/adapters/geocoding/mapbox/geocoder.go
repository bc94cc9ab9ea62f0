package mapbox

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lost-found-search/internal/platform/httpclient"
	"lost-found-search/internal/ports/geocoding"
)

const (
	DefaultBaseURL = "https://api.mapbox.com"
	placesPath     = "/geocoding/v5/mapbox.places/"
)

var ErrNotConfigured = errors.New("mapbox access token not configured")

type Config struct {
	BaseURL     string
	AccessToken string
	Language    string // "fr"
	Country     string // "be"
	Timeout     time.Duration
}

// Geocoder implementa geocoding.Geocoder contra la API de places de Mapbox.
type Geocoder struct {
	http     *httpclient.Client
	token    string
	language string
	country  string
}

func New(cfg Config) (*Geocoder, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.New(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Geocoder{
		http:     hc,
		token:    strings.TrimSpace(cfg.AccessToken),
		language: strings.TrimSpace(cfg.Language),
		country:  strings.TrimSpace(cfg.Country),
	}, nil
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	PlaceName string         `json:"place_name"`
	Address   string         `json:"address"` // número de casa en features de tipo address
	Center    []float64      `json:"center"`  // [lon, lat]
	Context   []contextEntry `json:"context"`
}

type contextEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Reverse resuelve coordenadas a una dirección. (nil, nil) si no hay resultado.
func (g *Geocoder) Reverse(ctx context.Context, longitude, latitude float64) (*geocoding.Place, error) {
	query := formatCoord(longitude) + "," + formatCoord(latitude)
	fc, err := g.places(ctx, "reverse", query, 1)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	p := toPlace(fc.Features[0])
	// El reverse no siempre trae center; las coordenadas pedidas valen.
	if len(fc.Features[0].Center) < 2 {
		p.Longitude, p.Latitude = longitude, latitude
	}
	return &p, nil
}

// Forward resuelve texto libre a la primera coincidencia. (nil, nil) si no hay resultado.
func (g *Geocoder) Forward(ctx context.Context, query string) (*geocoding.Place, error) {
	places, err := g.Suggest(ctx, query, 1)
	if err != nil {
		var ge *geocoding.Error
		if errors.As(err, &ge) {
			ge.Op = "forward"
		}
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &places[0], nil
}

// Suggest devuelve hasta limit coincidencias para autocompletar.
func (g *Geocoder) Suggest(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []geocoding.Place{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	fc, err := g.places(ctx, "suggest", query, limit)
	if err != nil {
		return nil, err
	}

	out := make([]geocoding.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		if len(f.Center) < 2 {
			continue
		}
		out = append(out, toPlace(f))
	}
	return out, nil
}

func (g *Geocoder) places(ctx context.Context, op, query string, limit int) (featureCollection, error) {
	if g.token == "" {
		return featureCollection{}, &geocoding.Error{Op: op, Err: ErrNotConfigured}
	}

	q := url.Values{}
	q.Set("access_token", g.token)
	if g.language != "" {
		q.Set("language", g.language)
	}
	if g.country != "" {
		q.Set("country", g.country)
	}
	q.Set("limit", strconv.Itoa(limit))

	var fc featureCollection
	path := placesPath + url.PathEscape(query) + ".json"
	if err := g.http.GetJSON(ctx, path, q, nil, &fc); err != nil {
		return featureCollection{}, &geocoding.Error{Op: op, Err: redact(err, g.token)}
	}
	return fc, nil
}

func toPlace(f feature) geocoding.Place {
	p := geocoding.Place{Address: f.PlaceName}
	if p.Address == "" {
		p.Address = strings.TrimSpace(f.Text + " " + f.Address)
	}
	for _, c := range f.Context {
		switch {
		case strings.HasPrefix(c.ID, "place"):
			p.City = c.Text
		case strings.HasPrefix(c.ID, "postcode"):
			p.PostalCode = c.Text
		}
	}
	if len(f.Center) >= 2 {
		p.Longitude, p.Latitude = f.Center[0], f.Center[1]
	}
	return p
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// redact saca el access token de los mensajes de error (las URLs lo incluyen).
func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), token, "***"))
}
