package mapbox

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lost-found-search/internal/ports/geocoding"
)

const reverseBody = `{"features":[{
	"id":"address.123","text":"Rue Neuve","address":"12",
	"place_name":"Rue Neuve 12, 1000 Bruxelles, Belgique",
	"center":[4.3551,50.8514],
	"context":[
		{"id":"postcode.456","text":"1000"},
		{"id":"place.789","text":"Bruxelles"},
		{"id":"region.1","text":"Bruxelles-Capitale"},
		{"id":"country.2","text":"Belgique"}
	]}]}`

func newTestGeocoder(t *testing.T, h http.HandlerFunc) *Geocoder {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g, err := New(Config{BaseURL: srv.URL, AccessToken: "pk.test", Language: "fr", Country: "be"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestReverse(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocoding/v5/mapbox.places/4.355100,50.851400.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("access_token") != "pk.test" || q.Get("language") != "fr" || q.Get("country") != "be" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, reverseBody)
	})

	p, err := g.Reverse(context.Background(), 4.3551, 50.8514)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p == nil {
		t.Fatalf("expected a place")
	}
	if p.Address != "Rue Neuve 12, 1000 Bruxelles, Belgique" || p.City != "Bruxelles" || p.PostalCode != "1000" {
		t.Fatalf("unexpected place %+v", p)
	}
}

func TestReverseNoFeatures(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"features":[]}`)
	})

	p, err := g.Reverse(context.Background(), 0, 0)
	if err != nil || p != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", p, err)
	}
}

func TestStructuredAddressWithoutPlaceName(t *testing.T) {
	p := toPlace(feature{Text: "Chaussée de Wavre", Address: "150", Center: []float64{4.38, 50.83}})
	if p.Address != "Chaussée de Wavre 150" {
		t.Fatalf("unexpected address %q", p.Address)
	}
	if p.Latitude != 50.83 || p.Longitude != 4.38 {
		t.Fatalf("unexpected coordinates %+v", p)
	}
}

func TestForwardAndSuggest(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Bruxell.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"features":[
			{"place_name":"Bruxelles, Belgique","center":[4.35,50.85],"context":[{"id":"place.1","text":"Bruxelles"}]},
			{"place_name":"Sans centre"},
			{"place_name":"Bruxelles-Ville","center":[4.36,50.84]}
		]}`)
	})

	places, err := g.Suggest(context.Background(), "Bruxell", 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected features without center skipped, got %+v", places)
	}

	p, err := g.Forward(context.Background(), "Bruxell")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p == nil || p.Latitude != 50.85 || p.City != "Bruxelles" {
		t.Fatalf("unexpected place %+v", p)
	}
}

func TestProviderErrorIsWrapped(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Authorized - Invalid Token"}`, http.StatusUnauthorized)
	})

	_, err := g.Reverse(context.Background(), 4.35, 50.85)
	var ge *geocoding.Error
	if !errors.As(err, &ge) || ge.Op != "reverse" {
		t.Fatalf("expected *geocoding.Error for reverse, got %v", err)
	}
	if strings.Contains(err.Error(), "pk.test") {
		t.Fatalf("token leaked in error: %v", err)
	}
}

func TestMissingTokenFails(t *testing.T) {
	g, _ := New(Config{})
	_, err := g.Suggest(context.Background(), "Namur", 5)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
