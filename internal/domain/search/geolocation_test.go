package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"lost-found-search/internal/ports/geolocation"
)

// steppedSource deja pasar un pedido por cada envío en release.
type steppedSource struct {
	release chan struct{}

	mu      sync.Mutex
	entered int
}

func (s *steppedSource) CurrentPosition(ctx context.Context, _ geolocation.Options) (geolocation.Position, error) {
	s.mu.Lock()
	s.entered++
	s.mu.Unlock()

	select {
	case <-s.release:
		return geolocation.Position{Latitude: 50.85, Longitude: 4.35}, nil
	case <-ctx.Done():
		return geolocation.Position{}, ctx.Err()
	}
}

func (s *steppedSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered
}

func TestGeolocationProvider_LocatingWhileAnyRequestPending(t *testing.T) {
	life, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &steppedSource{release: make(chan struct{})}
	p := NewGeolocationProvider(life, src, time.Minute)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := p.CurrentPosition(context.Background())
			results <- err
		}()
	}
	if !waitFor(func() bool { return src.count() == 2 }, time.Second) {
		t.Fatalf("requests never started")
	}

	src.release <- struct{}{}
	if err := <-results; err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !p.Locating() {
		t.Fatalf("locating must stay true while the second request is pending")
	}

	src.release <- struct{}{}
	if err := <-results; err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Locating() {
		t.Fatalf("locating must be false once every request finished")
	}
}

func TestGeolocationProvider_ReleaseClearsLocating(t *testing.T) {
	life, cancel := context.WithCancel(context.Background())

	src := &steppedSource{release: make(chan struct{})}
	p := NewGeolocationProvider(life, src, time.Minute)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.CurrentPosition(context.Background())
	}()
	if !waitFor(p.Locating, time.Second) {
		t.Fatalf("request never started")
	}

	cancel()
	p.release()
	<-done
	if p.Locating() {
		t.Fatalf("locating left true after release")
	}
}
