package ports

import (
	"context"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// Notifier presenta el resultado de un scan al usuario.
type Notifier interface {
	// Notify muestra la vista filtrada del scan junto con sus contadores.
	Notify(ctx context.Context, result domain.ScanResult, view domain.View) error
}
