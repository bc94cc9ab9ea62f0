package animalsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("animals api not configured")
	ErrUnauthorized  = errors.New("animals api unauthorized")
	ErrUpstream      = errors.New("animals api upstream error")
)

type Config struct {
	BaseURL string
	// Token de servicio. Si el request trae un bearer del usuario, se usa ese.
	Token   string
	Timeout time.Duration
}

// Client implementa animals.Catalog contra la API REST de animales y matching.
type Client struct {
	http  *httpclient.Client
	token string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, token: strings.TrimSpace(cfg.Token)}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// ListByStatus: GET /status/lost | /status/found.
func (c *Client) ListByStatus(ctx context.Context, status animals.Status) ([]animals.StatusRecord, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	var out []statusRecordDTO
	if err := c.http.GetJSON(ctx, "/status/"+strings.ToLower(string(status)), nil, c.headers(ctx), &out); err != nil {
		return nil, c.wrap(err)
	}

	records := make([]animals.StatusRecord, 0, len(out))
	for _, d := range out {
		records = append(records, d.toDomain())
	}
	return records, nil
}

// PotentialMatches: GET /matching/{lost|found}/{animalID}/potential-matches.
// El segmento es el status del animal de origen: lost_to_found busca encontrados para un perdido.
func (c *Client) PotentialMatches(ctx context.Context, animalID string, dir animals.Direction) ([]animals.MatchCandidate, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, errors.New("animalID required")
	}

	seg, err := directionSegment(dir)
	if err != nil {
		return nil, err
	}

	var out []matchCandidateDTO
	path := fmt.Sprintf("/matching/%s/%s/potential-matches", seg, url.PathEscape(animalID))
	if err := c.http.GetJSON(ctx, path, nil, c.headers(ctx), &out); err != nil {
		return nil, c.wrap(err)
	}
	return toCandidates(out), nil
}

// ScoreCandidates: POST /matching/score?direction=...&maxResults=N con el animal en el body.
func (c *Client) ScoreCandidates(ctx context.Context, target animals.Animal, dir animals.Direction, maxResults int) ([]animals.MatchCandidate, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if _, err := directionSegment(dir); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("direction", string(dir))
	if maxResults > 0 {
		q.Set("maxResults", strconv.Itoa(maxResults))
	}

	var out []matchCandidateDTO
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/matching/score",
		Query:   q,
		Headers: c.headers(ctx),
		Body:    fromAnimal(target),
	}, &out)
	if err != nil {
		return nil, c.wrap(err)
	}
	return toCandidates(out), nil
}

func (c *Client) headers(ctx context.Context) map[string]string {
	if tok, ok := httpclient.BearerFromContext(ctx); ok {
		return httpclient.BearerHeader(tok)
	}
	return httpclient.BearerHeader(c.token)
}

func (c *Client) wrap(err error) error {
	switch httpclient.StatusCode(err) {
	case 0:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}

func directionSegment(dir animals.Direction) (string, error) {
	switch dir {
	case animals.DirectionLostToFound:
		return "lost", nil
	case animals.DirectionFoundToLost:
		return "found", nil
	default:
		return "", fmt.Errorf("invalid direction %q", dir)
	}
}

func toCandidates(in []matchCandidateDTO) []animals.MatchCandidate {
	out := make([]animals.MatchCandidate, 0, len(in))
	for _, d := range in {
		out = append(out, d.toDomain())
	}
	return out
}
