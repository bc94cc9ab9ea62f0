package animalsapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/httpclient"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/api", Token: "service-token", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestListByStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status/lost" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-token" {
			t.Errorf("unexpected auth %q", got)
		}
		_, _ = io.WriteString(w, `[
			{"statusId":"s1","status":"LOST","reportDate":"2024-05-01","comment":"collier rouge",
			 "location":{"latitude":50.85,"longitude":4.35,"address":"Rue Neuve","city":"Bruxelles","postalCode":"1000"},
			 "animal":{"id":"a1","name":"Minou","breed":"Chartreux","color":"Gris","eyeColor":"Jaune","dateOfBirth":"2020-03-04T00:00:00"}},
			{"statusId":"s2","status":"lost","reportDate":"2024-05-02T10:00:00Z","location":null,
			 "animal":{"id":"a2","name":"Rex"}}
		]`)
	})

	got, err := c.ListByStatus(context.Background(), animals.StatusLost)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	first := got[0]
	if first.Animal.Breed != "Chartreux" || first.Location == nil || *first.Location.Latitude != 50.85 {
		t.Fatalf("unexpected first record %+v", first)
	}
	if first.ReportDate.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("unexpected report date %v", first.ReportDate)
	}
	if first.Animal.DateOfBirth == nil || first.Animal.DateOfBirth.Year() != 2020 {
		t.Fatalf("unexpected date of birth %v", first.Animal.DateOfBirth)
	}
	if got[1].Location != nil || got[1].Status != animals.StatusLost {
		t.Fatalf("unexpected second record %+v", got[1])
	}
}

func TestForwardedBearerWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("unexpected auth %q", got)
		}
		_, _ = io.WriteString(w, `[]`)
	})

	ctx := httpclient.WithBearer(context.Background(), "user-token")
	got, err := c.ListByStatus(ctx, animals.StatusFound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestPotentialMatchesPaths(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `[{"matchedStatus":{"statusId":"f1","status":"FOUND","animal":{"id":"b1"}},
			"matchScore":87.5,"colorScore":90,"breedScore":100,"furScore":70,"eyesScore":80,"distanceScore":60}]`)
	})

	got, err := c.PotentialMatches(context.Background(), "a1", animals.DirectionLostToFound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].MatchScore != 87.5 || got[0].Scores.Breed != 100 || got[0].MatchedStatus.Animal.ID != "b1" {
		t.Fatalf("unexpected candidates %+v", got)
	}

	if _, err := c.PotentialMatches(context.Background(), "b1", animals.DirectionFoundToLost); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []string{"/api/matching/lost/a1/potential-matches", "/api/matching/found/b1/potential-matches"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, paths)
		}
	}

	if _, err := c.PotentialMatches(context.Background(), "a1", "sideways"); err == nil {
		t.Fatalf("expected error for invalid direction")
	}
}

func TestScoreCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/matching/score" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("direction") != "found_to_lost" || r.URL.Query().Get("maxResults") != "5" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["breed"] != "Beagle" {
			t.Errorf("unexpected body %v", body)
		}
		_, _ = io.WriteString(w, `[{"matchScore":55}]`)
	})

	got, err := c.ScoreCandidates(context.Background(), animals.Animal{Breed: "Beagle"}, animals.DirectionFoundToLost, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].MatchScore != 55 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestErrorMapping(t *testing.T) {
	status := http.StatusUnauthorized
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", status)
	})

	if _, err := c.ListByStatus(context.Background(), animals.StatusLost); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	status = http.StatusBadGateway
	_, err := c.ListByStatus(context.Background(), animals.StatusLost)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if httpclient.StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("expected wrapped status 502, got %d", httpclient.StatusCode(err))
	}
}

func TestNotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := c.ListByStatus(context.Background(), animals.StatusLost); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
