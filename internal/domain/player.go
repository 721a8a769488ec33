package domain

import "time"

// PlayerPrediction es la predicción del modelo para un jugador.
// Las probabilidades pueden venir como fracción (0–1) o como porcentaje (0–100);
// la normalización se hace al calcular el edge, no al mapear.
type PlayerPrediction struct {
	PlayerName    string                  `json:"player_name"` // raw, posiblemente "Last, First"
	DGID          int                     `json:"dg_id,omitempty"`
	Probabilities map[OutcomeType]float64 `json:"probabilities"`
}

// Probability devuelve la probabilidad raw para el outcome dado.
// ok=false si el modelo no publica ese campo para el jugador.
func (p PlayerPrediction) Probability(o OutcomeType) (float64, bool) {
	v, ok := p.Probabilities[o]
	return v, ok
}

// PredictionSet es una descarga completa del modelo para el torneo actual.
type PredictionSet struct {
	EventName string             `json:"event_name"`
	Scope     Scope              `json:"scope"`
	Players   []PlayerPrediction `json:"players"`
	FetchedAt time.Time          `json:"fetched_at"`
}
