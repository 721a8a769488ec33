package datagolf

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/adapters/httpjson"
	"github.com/alejandrodnm/edgefinder/internal/domain"
)

const (
	DefaultBase = "https://feeds.datagolf.com"
	DefaultTour = "pga"

	preTournamentPath = "/preds/pre-tournament"
	inPlayPath        = "/preds/in-play"

	// Data Golf: 45 req/min → 60% → 27/min
	ratePerSec = 27.0 / 60
	rateBurst  = 3
)

// Client es el adapter del feed de predicciones de Data Golf.
// Implementa ports.PredictionProvider.
type Client struct {
	http   *httpjson.Client
	base   string
	apiKey string
	tour   string
	now    func() time.Time
}

// NewClient crea un Client. base y tour vacíos usan los valores por defecto.
// Las opciones se aplican sobre el rate limit propio de Data Golf.
func NewClient(base, apiKey, tour string, opts ...httpjson.Option) *Client {
	if base == "" {
		base = DefaultBase
	}
	if tour == "" {
		tour = DefaultTour
	}
	opts = append([]httpjson.Option{httpjson.WithRateLimit(ratePerSec, rateBurst)}, opts...)
	return &Client{
		http:   httpjson.New(opts...),
		base:   base,
		apiKey: apiKey,
		tour:   tour,
		now:    time.Now,
	}
}

// FetchPredictions descarga las probabilidades del modelo para el scope dado.
func (c *Client) FetchPredictions(ctx context.Context, scope domain.Scope) (domain.PredictionSet, error) {
	switch scope {
	case domain.ScopePreTournament, "":
		var resp preTournamentResponse
		if err := c.http.GetJSON(ctx, c.url(preTournamentPath), &resp); err != nil {
			return domain.PredictionSet{}, fmt.Errorf("datagolf.FetchPredictions: pre-tournament: %w", err)
		}
		set := mapPreTournament(resp, c.now())
		c.logFetched(set)
		return set, nil

	case domain.ScopeLive:
		var resp inPlayResponse
		if err := c.http.GetJSON(ctx, c.url(inPlayPath), &resp); err != nil {
			return domain.PredictionSet{}, fmt.Errorf("datagolf.FetchPredictions: in-play: %w", err)
		}
		set := mapInPlay(resp, c.now())
		c.logFetched(set)
		return set, nil

	default:
		return domain.PredictionSet{}, fmt.Errorf("datagolf.FetchPredictions: unsupported scope %q", scope)
	}
}

func (c *Client) url(path string) string {
	q := url.Values{}
	q.Set("tour", c.tour)
	q.Set("odds_format", "percent")
	q.Set("file_format", "json")
	q.Set("key", c.apiKey)
	return c.base + path + "?" + q.Encode()
}

func (c *Client) logFetched(set domain.PredictionSet) {
	slog.Info("predictions fetched",
		"event", set.EventName,
		"scope", set.Scope,
		"players", len(set.Players),
	)
}
