package domain

import "time"

// ResolutionMethod indica cómo se eligió el código de evento actual.
type ResolutionMethod string

const (
	// ResolvedByLabel: el nombre del evento del modelo comparte una palabra con la etiqueta.
	ResolvedByLabel ResolutionMethod = "label_match"
	// ResolvedByVolumeNonMajor: código no-major con más contratos.
	ResolvedByVolumeNonMajor ResolutionMethod = "volume_non_major"
	// ResolvedByVolume: código con más contratos, sin excluir majors.
	ResolvedByVolume ResolutionMethod = "volume_any"
)

// EventResolution es el código de evento elegido como torneo actual.
// Es heurístico: best-effort, no una clave de join garantizada.
type EventResolution struct {
	Code      string           `json:"code"`
	Label     string           `json:"label"`
	Method    ResolutionMethod `json:"method"`
	Contracts int              `json:"contracts"`
}

// ScanResult es el resultado inmutable de un scan. Cada scan produce uno nuevo
// que reemplaza al anterior por completo.
type ScanResult struct {
	ID        string           `json:"id"`
	EventName string           `json:"event_name"`
	Scope     Scope            `json:"scope"`
	Event     *EventResolution `json:"event,omitempty"` // nil = sin filtro de evento
	Records   []EdgeRecord     `json:"records"`

	FieldSize    int `json:"field_size"` // jugadores en el modelo
	Matched      int `json:"matched"`    // contratos con nombre emparejado (tenga o no probabilidad)
	ExactMatches int `json:"exact_matches"`
	FuzzyMatches int `json:"fuzzy_matches"`
	Skipped      int `json:"skipped"`      // contratos del evento sin nombre o sin jugador
	OutOfEvent   int `json:"out_of_event"` // contratos de otros eventos descartados

	SeriesErrors map[OutcomeType]string `json:"series_errors,omitempty"`
	ScannedAt    time.Time              `json:"scanned_at"`
}

// View aplica los parámetros de vista a los records del scan.
func (r ScanResult) View(p ViewParams) View {
	return ApplyView(r.Records, p)
}
