package kalshi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/alejandrodnm/edgefinder/internal/adapters/httpjson"
	"github.com/alejandrodnm/edgefinder/internal/domain"
)

const (
	DefaultBase = "https://api.elections.kalshi.com/trade-api/v2"

	marketsPath      = "/markets"
	defaultMaxPages  = 20
	defaultPageLimit = 200

	// Kalshi basic tier: 20 lecturas/s → 60% → 12/s
	ratePerSec = 12
	rateBurst  = 5
)

// Client es el adapter de listados de mercados de Kalshi.
// Implementa ports.MarketProvider. Solo lectura, sin autenticación.
type Client struct {
	http      *httpjson.Client
	base      string
	maxPages  int
	pageLimit int
}

// NewClient crea un Client. Valores vacíos o cero usan los defaults.
func NewClient(base string, maxPages, pageLimit int, opts ...httpjson.Option) *Client {
	if base == "" {
		base = DefaultBase
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	opts = append([]httpjson.Option{httpjson.WithRateLimit(ratePerSec, rateBurst)}, opts...)
	return &Client{
		http:      httpjson.New(opts...),
		base:      base,
		maxPages:  maxPages,
		pageLimit: pageLimit,
	}
}

// FetchSeries devuelve los contratos abiertos de una serie, paginando con cursor
// hasta maxPages páginas. Para al primer fallo, página vacía o cursor vacío.
// Un fallo en la primera página es un error; en páginas posteriores se
// devuelve lo acumulado.
func (c *Client) FetchSeries(ctx context.Context, seriesTicker string) ([]domain.MarketContract, error) {
	contracts, _, err := c.FetchSeriesWithStatus(ctx, seriesTicker)
	return contracts, err
}

// FetchSeriesWithStatus es FetchSeries indicando además si el listado está completo:
// complete=false cuando una página posterior a la primera falló.
// Llegar al tope de páginas cuenta como completo.
func (c *Client) FetchSeriesWithStatus(ctx context.Context, seriesTicker string) (contracts []domain.MarketContract, complete bool, err error) {
	var all []domain.MarketContract
	cursor := ""
	complete = true

	for page := 0; page < c.maxPages; page++ {
		var resp marketsResponse
		if err := c.http.GetJSON(ctx, c.pageURL(seriesTicker, cursor), &resp); err != nil {
			if page == 0 {
				return nil, false, fmt.Errorf("kalshi.FetchSeries %s: %w", seriesTicker, err)
			}
			complete = false
			slog.Warn("market page failed, keeping partial results",
				"series", seriesTicker,
				"page", page+1,
				"contracts", len(all),
				"err", err,
			)
			break
		}

		if len(resp.Markets) == 0 {
			break
		}
		all = append(all, mapMarkets(resp.Markets)...)

		slog.Debug("fetched markets page",
			"series", seriesTicker,
			"page", page+1,
			"count", len(resp.Markets),
			"total", len(all),
			"has_more", resp.Cursor != "",
		)

		if resp.Cursor == "" {
			break
		}
		if page == c.maxPages-1 {
			slog.Warn("market page cap reached", "series", seriesTicker, "pages", c.maxPages)
		}
		cursor = resp.Cursor
	}

	slog.Info("series fetched", "series", seriesTicker, "contracts", len(all), "complete", complete)
	return all, complete, nil
}

func (c *Client) pageURL(seriesTicker, cursor string) string {
	q := url.Values{}
	q.Set("series_ticker", seriesTicker)
	q.Set("status", "open")
	q.Set("limit", strconv.Itoa(c.pageLimit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return c.base + marketsPath + "?" + q.Encode()
}
