package domain

import (
	"fmt"
	"strings"
)

// OutcomeType es uno de los umbrales de posición final que se siguen (win, top 5, top 10, top 20).
type OutcomeType string

const (
	OutcomeWin   OutcomeType = "win"
	OutcomeTop5  OutcomeType = "top_5"
	OutcomeTop10 OutcomeType = "top_10"
	OutcomeTop20 OutcomeType = "top_20"
)

// Outcomes devuelve los outcome types en orden canónico.
// Todo lo que itera series (fetch, resolución de evento, matching) usa este orden
// para que el resultado de un scan sea determinista.
func Outcomes() []OutcomeType {
	return []OutcomeType{OutcomeWin, OutcomeTop5, OutcomeTop10, OutcomeTop20}
}

// Label devuelve la etiqueta legible ("Top 10").
func (o OutcomeType) Label() string {
	switch o {
	case OutcomeWin:
		return "Win"
	case OutcomeTop5:
		return "Top 5"
	case OutcomeTop10:
		return "Top 10"
	case OutcomeTop20:
		return "Top 20"
	}
	return string(o)
}

// Valid devuelve true si o es uno de los outcome types conocidos.
func (o OutcomeType) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeTop5, OutcomeTop10, OutcomeTop20:
		return true
	}
	return false
}

// ParseOutcome acepta la clave ("top_10"), la etiqueta ("Top 10") o variantes
// sin separador ("top10"). "" y "all" devuelven "" (sin filtro).
func ParseOutcome(s string) (OutcomeType, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(k)
	switch k {
	case "", "all":
		return "", nil
	case "win":
		return OutcomeWin, nil
	case "top5":
		return OutcomeTop5, nil
	case "top10":
		return OutcomeTop10, nil
	case "top20":
		return OutcomeTop20, nil
	}
	return "", fmt.Errorf("domain.ParseOutcome: unknown market %q", s)
}

// Side es el lado de un contrato binario.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// ParseSide acepta "yes"/"no" en cualquier capitalización. "" y "all" devuelven "" (sin filtro).
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return "", nil
	case "YES":
		return SideYes, nil
	case "NO":
		return SideNo, nil
	}
	return "", fmt.Errorf("domain.ParseSide: unknown side %q", s)
}

// Scope es el alcance de las predicciones del modelo.
type Scope string

const (
	ScopePreTournament Scope = "pre_tournament"
	ScopeLive          Scope = "live"
)

// ParseScope acepta "pre_tournament" (default si vacío), "pre-tournament", "live" o "in-play".
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pre_tournament", "pre-tournament", "pre":
		return ScopePreTournament, nil
	case "live", "in-play", "in_play":
		return ScopeLive, nil
	}
	return "", fmt.Errorf("domain.ParseScope: unknown scope %q", s)
}
