package ports

import (
	"context"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// MarketProvider obtiene los contratos abiertos de una serie del exchange.
type MarketProvider interface {
	// FetchSeries devuelve los contratos abiertos de la serie dada.
	// Pagina automáticamente con un tope fijo de páginas.
	FetchSeries(ctx context.Context, seriesTicker string) ([]domain.MarketContract, error)
}

// SeriesStatusProvider es un MarketProvider que distingue un listado completo de
// uno parcial (una página posterior a la primera falló).
type SeriesStatusProvider interface {
	MarketProvider
	FetchSeriesWithStatus(ctx context.Context, seriesTicker string) ([]domain.MarketContract, bool, error)
}
