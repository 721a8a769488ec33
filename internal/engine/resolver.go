package engine

// resolver.go — resolución heurística del evento actual.
//
// Una misma serie del exchange (p.ej. KXPGATOUR) lista contratos de varios torneos a la vez:
// el de esta semana, a veces el siguiente y a menudo el próximo major. El código de evento
// no tiene relación directa con el nombre del torneo del modelo, así que se resuelve en tres pasos:
//   1. etiqueta conocida que comparte una palabra (>3 letras) con el nombre del modelo;
//   2. el código no-major con más contratos (los majors acumulan volumen semanas antes);
//   3. el código con más contratos.
// Es best-effort: sin coincidencia de nombre, el paso 2 puede elegir mal.

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

const minSharedWordLen = 4

type eventCandidate struct {
	code  string
	label string
	count int
	major bool
}

// ResolveEvent elige el código de evento del torneo actual entre todos los contratos.
// ok=false si ningún contrato tiene código: el caller no filtra por evento.
// Los empates de volumen se resuelven a favor del código visto primero.
func ResolveEvent(bySeries map[domain.OutcomeType][]domain.MarketContract, modelEventName string) (domain.EventResolution, bool) {
	var order []*eventCandidate
	byCode := make(map[string]*eventCandidate)

	for _, outcome := range orderedOutcomes(bySeries) {
		for _, c := range bySeries[outcome] {
			code := c.EventCode()
			if code == "" {
				continue
			}
			cand, ok := byCode[code]
			if !ok {
				label := domain.EventLabel(code)
				cand = &eventCandidate{code: code, label: label, major: domain.IsMajor(label)}
				byCode[code] = cand
				order = append(order, cand)
			}
			cand.count++
		}
	}

	if len(order) == 0 {
		return domain.EventResolution{}, false
	}

	words := significantWords(modelEventName)
	for _, cand := range order {
		if sharesWord(words, cand.label) {
			return resolution(cand, domain.ResolvedByLabel), true
		}
	}

	if best := mostContracts(order, true); best != nil {
		return resolution(best, domain.ResolvedByVolumeNonMajor), true
	}
	return resolution(mostContracts(order, false), domain.ResolvedByVolume), true
}

func resolution(c *eventCandidate, method domain.ResolutionMethod) domain.EventResolution {
	return domain.EventResolution{
		Code:      c.code,
		Label:     c.label,
		Method:    method,
		Contracts: c.count,
	}
}

// mostContracts devuelve el candidato con más contratos; con skipMajors ignora los majors.
func mostContracts(order []*eventCandidate, skipMajors bool) *eventCandidate {
	var best *eventCandidate
	for _, c := range order {
		if skipMajors && c.major {
			continue
		}
		if best == nil || c.count > best.count {
			best = c
		}
	}
	return best
}

// significantWords devuelve las palabras de más de 3 letras, en minúsculas y sin puntuación.
func significantWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if utf8.RuneCountInString(w) >= minSharedWordLen {
			words[w] = true
		}
	}
	return words
}

func sharesWord(words map[string]bool, label string) bool {
	for w := range significantWords(label) {
		if words[w] {
			return true
		}
	}
	return false
}

// orderedOutcomes devuelve las claves de bySeries en orden canónico;
// las claves desconocidas van al final en orden alfabético.
func orderedOutcomes(bySeries map[domain.OutcomeType][]domain.MarketContract) []domain.OutcomeType {
	out := make([]domain.OutcomeType, 0, len(bySeries))
	for _, o := range domain.Outcomes() {
		if _, ok := bySeries[o]; ok {
			out = append(out, o)
		}
	}
	var extra []domain.OutcomeType
	for o := range bySeries {
		if !o.Valid() {
			extra = append(extra, o)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
