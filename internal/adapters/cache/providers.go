package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/alejandrodnm/edgefinder/internal/ports"
)

// CachedPredictions decora un PredictionProvider con la cache TTL.
type CachedPredictions struct {
	next  ports.PredictionProvider
	cache *TTLCache
	ttl   time.Duration
}

func NewCachedPredictions(next ports.PredictionProvider, cache *TTLCache, ttl time.Duration) *CachedPredictions {
	return &CachedPredictions{next: next, cache: cache, ttl: ttl}
}

func (p *CachedPredictions) FetchPredictions(ctx context.Context, scope domain.Scope) (domain.PredictionSet, error) {
	raw, err := p.cache.GetOrRefresh(ctx, "predictions:"+string(scope), p.ttl, func(ctx context.Context) ([]byte, error) {
		set, err := p.next.FetchPredictions(ctx, scope)
		if err != nil {
			return nil, err
		}
		return json.Marshal(set)
	})
	if err != nil {
		return domain.PredictionSet{}, err
	}

	var set domain.PredictionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.PredictionSet{}, fmt.Errorf("cache.FetchPredictions: decode: %w", err)
	}
	return set, nil
}

// errPartialListing marca un listado incompleto: se devuelve al caller pero no se guarda.
var errPartialListing = errors.New("partial listing")

// CachedMarkets decora un MarketProvider con la cache TTL, una clave por serie.
// Si el provider implementa ports.SeriesStatusProvider, los listados parciales no se cachean.
type CachedMarkets struct {
	next  ports.MarketProvider
	cache *TTLCache
	ttl   time.Duration
}

func NewCachedMarkets(next ports.MarketProvider, cache *TTLCache, ttl time.Duration) *CachedMarkets {
	return &CachedMarkets{next: next, cache: cache, ttl: ttl}
}

func (m *CachedMarkets) FetchSeries(ctx context.Context, seriesTicker string) ([]domain.MarketContract, error) {
	var partial []domain.MarketContract
	raw, err := m.cache.GetOrRefresh(ctx, "markets:"+seriesTicker, m.ttl, func(ctx context.Context) ([]byte, error) {
		contracts, complete, err := m.fetch(ctx, seriesTicker)
		if err != nil {
			return nil, err
		}
		if !complete {
			partial = contracts
			return nil, errPartialListing
		}
		return json.Marshal(contracts)
	})
	if errors.Is(err, errPartialListing) {
		slog.Debug("partial listing not cached", "series", seriesTicker, "contracts", len(partial))
		return partial, nil
	}
	if err != nil {
		return nil, err
	}

	var contracts []domain.MarketContract
	if err := json.Unmarshal(raw, &contracts); err != nil {
		return nil, fmt.Errorf("cache.FetchSeries: decode: %w", err)
	}
	return contracts, nil
}

func (m *CachedMarkets) fetch(ctx context.Context, seriesTicker string) ([]domain.MarketContract, bool, error) {
	if sp, ok := m.next.(ports.SeriesStatusProvider); ok {
		return sp.FetchSeriesWithStatus(ctx, seriesTicker)
	}
	contracts, err := m.next.FetchSeries(ctx, seriesTicker)
	return contracts, err == nil, err
}
