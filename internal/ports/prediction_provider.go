package ports

import (
	"context"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// PredictionProvider obtiene las probabilidades del modelo para el torneo actual.
type PredictionProvider interface {
	// FetchPredictions devuelve el set de predicciones para el scope dado.
	// Un error aquí es fatal para el scan.
	FetchPredictions(ctx context.Context, scope domain.Scope) (domain.PredictionSet, error)
}
