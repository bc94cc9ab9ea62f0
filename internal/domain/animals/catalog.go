package animals

import (
	"context"
	"errors"
)

// Catalog es el colaborador remoto (colecciones + servicio de matching).
type Catalog interface {
	ListByStatus(ctx context.Context, status Status) ([]StatusRecord, error)
	PotentialMatches(ctx context.Context, animalID string, dir Direction) ([]MatchCandidate, error)
	ScoreCandidates(ctx context.Context, target Animal, dir Direction, maxResults int) ([]MatchCandidate, error)
}

var ErrNoCatalog = errors.New("animals catalog not configured")
