package datagolf

// DTOs raw de la API de Data Golf. Solo se usan dentro de este paquete.
// La conversión a domain se hace en mapping.go.

// preTournamentResponse es la respuesta de GET /preds/pre-tournament.
type preTournamentResponse struct {
	EventName          string      `json:"event_name"`
	LastUpdated        string      `json:"last_updated"`
	Models             []string    `json:"models_available"`
	BaselineHistoryFit []playerRow `json:"baseline_history_fit"`
	Baseline           []playerRow `json:"baseline"`
}

// inPlayResponse es la respuesta de GET /preds/in-play.
type inPlayResponse struct {
	Info inPlayInfo  `json:"info"`
	Data []playerRow `json:"data"`
}

type inPlayInfo struct {
	EventName    string `json:"event_name"`
	CurrentRound int    `json:"current_round"`
	LastUpdate   string `json:"last_update"`
}

// playerRow es la fila de un jugador. Los campos de probabilidad pueden faltar.
type playerRow struct {
	PlayerName string   `json:"player_name"`
	DGID       int      `json:"dg_id"`
	Win        *float64 `json:"win"`
	Top5       *float64 `json:"top_5"`
	Top10      *float64 `json:"top_10"`
	Top20      *float64 `json:"top_20"`
}
