package domain

// EdgeRecord es una oportunidad: un lado (YES o NO) de un contrato comparado con el modelo.
// Todas las magnitudes están en escala porcentual (0–100); el coste en centavos equivale a puntos.
type EdgeRecord struct {
	Player      string      `json:"player"`
	Outcome     OutcomeType `json:"market"`
	Side        Side        `json:"side"`
	Event       string      `json:"event"`
	ModelProb   float64     `json:"model_prob"` // probabilidad del modelo para el lado del record
	ModelYes    float64     `json:"model_yes"`
	ModelNo     float64     `json:"model_no"`
	Cost        int         `json:"cost"` // ask en centavos
	Edge        float64     `json:"edge"` // ModelProb - Cost
	Profit      int         `json:"profit"`
	RewardRatio float64     `json:"reward_ratio"` // Profit / Cost
	Ticker      string      `json:"ticker"`
	Volume      int64       `json:"volume"`
}

// NormalizeProbability lleva una probabilidad raw a escala 0–100.
// Valores ≤ 1 se tratan como fracción; el resto ya es porcentaje.
func NormalizeProbability(raw float64) float64 {
	if raw <= 1 {
		return raw * 100
	}
	return raw
}

// EdgesFor calcula los records YES y NO de un contrato dada la probabilidad YES del modelo
// (ya normalizada a porcentaje). Devuelve 0, 1 o 2 records; los edges negativos se conservan,
// el filtrado es responsabilidad de la vista.
func EdgesFor(player string, yesPct float64, c MarketContract, outcome OutcomeType, event string) []EdgeRecord {
	noPct := 100 - yesPct

	records := make([]EdgeRecord, 0, 2)
	if c.YesAsk > 0 {
		records = append(records, newEdgeRecord(player, SideYes, yesPct, yesPct, noPct, c.YesAsk, c, outcome, event))
	}
	if c.NoAsk > 0 && c.NoAsk < 100 {
		records = append(records, newEdgeRecord(player, SideNo, noPct, yesPct, noPct, c.NoAsk, c, outcome, event))
	}
	return records
}

func newEdgeRecord(player string, side Side, prob, yes, no float64, cost int, c MarketContract, outcome OutcomeType, event string) EdgeRecord {
	profit := 100 - cost
	return EdgeRecord{
		Player:      player,
		Outcome:     outcome,
		Side:        side,
		Event:       event,
		ModelProb:   prob,
		ModelYes:    yes,
		ModelNo:     no,
		Cost:        cost,
		Edge:        prob - float64(cost),
		Profit:      profit,
		RewardRatio: float64(profit) / float64(cost),
		Ticker:      c.Ticker,
		Volume:      c.Volume,
	}
}

// Tier clasifica magnitudes para el renderizado (hot > warm > el resto).
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierMild Tier = "mild"
	TierCool Tier = "cool"
)

// EdgeTier: ≥7 hot, ≥5 warm, resto mild.
func EdgeTier(edge float64) Tier {
	switch {
	case edge >= 7:
		return TierHot
	case edge >= 5:
		return TierWarm
	}
	return TierMild
}

// RewardTier: R/R ≥2 hot, ≥1 warm, resto cool.
func RewardTier(rr float64) Tier {
	switch {
	case rr >= 2:
		return TierHot
	case rr >= 1:
		return TierWarm
	}
	return TierCool
}
