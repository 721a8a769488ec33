package engine

import (
	"log/slog"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/google/uuid"
)

// Engine es el motor de matching y cálculo de edges.
// No guarda estado entre scans: cada llamada a Scan produce un ScanResult nuevo.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// New crea un Engine con reloj real e IDs UUID.
func New() *Engine {
	return &Engine{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Scan reconcilia las predicciones del modelo con los contratos de cada serie y
// produce los EdgeRecords de ambos lados de cada contrato emparejado.
//
//	predicciones + contratos por serie
//	  → ResolveEvent (descarta contratos de otros torneos)
//	  → Matcher (exacto, luego fuzzy)
//	  → EdgesFor (YES y NO por separado)
func (e *Engine) Scan(set domain.PredictionSet, bySeries map[domain.OutcomeType][]domain.MarketContract) domain.ScanResult {
	result := domain.ScanResult{
		ID:        e.newID(),
		EventName: set.EventName,
		Scope:     set.Scope,
		FieldSize: len(set.Players),
		ScannedAt: e.now(),
	}

	matcher := NewMatcher(set.Players)

	event, filterByEvent := ResolveEvent(bySeries, set.EventName)
	if filterByEvent {
		result.Event = &event
		slog.Debug("event resolved",
			"model_event", set.EventName,
			"code", event.Code,
			"label", event.Label,
			"method", event.Method,
			"contracts", event.Contracts,
		)
	} else {
		slog.Debug("no event codes in market data, skipping event filter")
	}

	var records []domain.EdgeRecord
	for _, outcome := range orderedOutcomes(bySeries) {
		for _, c := range bySeries[outcome] {
			if filterByEvent && c.EventCode() != event.Code {
				result.OutOfEvent++
				continue
			}

			match, ok := matcher.Match(c)
			if !ok {
				result.Skipped++
				if match.Name == "" {
					slog.Debug("contract without player name", "ticker", c.Ticker, "subtitle", c.Subtitle)
				} else {
					slog.Debug("no model player for contract", "ticker", c.Ticker, "name", match.Name)
				}
				continue
			}

			result.Matched++
			if match.Tier == MatchFuzzy {
				result.FuzzyMatches++
				slog.Debug("fuzzy match",
					"ticker", c.Ticker,
					"market_name", match.Name,
					"model_name", match.Prediction.PlayerName,
				)
			} else {
				result.ExactMatches++
			}

			raw, ok := match.Prediction.Probability(outcome)
			if !ok {
				continue
			}

			player := domain.DisplayName(match.Prediction.PlayerName)
			if player == "" {
				player = match.Name
			}
			yes := domain.NormalizeProbability(raw)
			records = append(records, domain.EdgesFor(player, yes, c, outcome, domain.ContractEventLabel(c))...)
		}
	}

	result.Records = records
	return result
}
