package datagolf

import (
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// unknownEventName se usa cuando el feed no trae nombre de evento.
const unknownEventName = "Unknown Event"

// mapPreTournament convierte la respuesta pre-torneo. Usa baseline_history_fit
// y cae a baseline si viene vacío.
func mapPreTournament(r preTournamentResponse, fetchedAt time.Time) domain.PredictionSet {
	rows := r.BaselineHistoryFit
	if len(rows) == 0 {
		rows = r.Baseline
	}
	return domain.PredictionSet{
		EventName: eventNameOrUnknown(r.EventName),
		Scope:     domain.ScopePreTournament,
		Players:   mapPlayers(rows),
		FetchedAt: fetchedAt,
	}
}

// mapInPlay convierte la respuesta de probabilidades en vivo.
func mapInPlay(r inPlayResponse, fetchedAt time.Time) domain.PredictionSet {
	return domain.PredictionSet{
		EventName: eventNameOrUnknown(r.Info.EventName),
		Scope:     domain.ScopeLive,
		Players:   mapPlayers(r.Data),
		FetchedAt: fetchedAt,
	}
}

func mapPlayers(rows []playerRow) []domain.PlayerPrediction {
	players := make([]domain.PlayerPrediction, 0, len(rows))
	for _, r := range rows {
		players = append(players, mapPlayer(r))
	}
	return players
}

// mapPlayer copia solo las probabilidades presentes; el valor se guarda
// en la escala del feed (fracción o porcentaje).
func mapPlayer(r playerRow) domain.PlayerPrediction {
	probs := make(map[domain.OutcomeType]float64, 4)
	set := func(o domain.OutcomeType, v *float64) {
		if v != nil {
			probs[o] = *v
		}
	}
	set(domain.OutcomeWin, r.Win)
	set(domain.OutcomeTop5, r.Top5)
	set(domain.OutcomeTop10, r.Top10)
	set(domain.OutcomeTop20, r.Top20)

	return domain.PlayerPrediction{
		PlayerName:    r.PlayerName,
		DGID:          r.DGID,
		Probabilities: probs,
	}
}

func eventNameOrUnknown(name string) string {
	if name == "" {
		return unknownEventName
	}
	return name
}
