package engine

import (
	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// MatchTier indica qué índice resolvió el match.
type MatchTier string

const (
	MatchExact MatchTier = "exact"
	MatchFuzzy MatchTier = "fuzzy"
)

// Match es el resultado de buscar el jugador de un contrato en el modelo.
type Match struct {
	Name       string // nombre extraído del subtítulo; "" si no se pudo extraer
	Prediction domain.PlayerPrediction
	Tier       MatchTier
}

// Matcher empareja contratos del exchange con predicciones del modelo.
// Índice exacto por NormalizeName y de fallback por FuzzyKey;
// en ambos, ante colisión gana la última predicción indexada.
type Matcher struct {
	exact map[string]domain.PlayerPrediction
	fuzzy map[string]domain.PlayerPrediction
}

// NewMatcher indexa las predicciones. Los jugadores sin nombre se ignoran.
func NewMatcher(players []domain.PlayerPrediction) *Matcher {
	m := &Matcher{
		exact: make(map[string]domain.PlayerPrediction, len(players)),
		fuzzy: make(map[string]domain.PlayerPrediction, len(players)),
	}
	for _, p := range players {
		key := domain.NormalizeName(p.PlayerName)
		if key == "" {
			continue
		}
		m.exact[key] = p
		if fk := domain.FuzzyKey(key); fk != "" {
			m.fuzzy[fk] = p
		}
	}
	return m
}

// Lookup busca un nombre raw: primero la clave exacta y solo si falla la clave fuzzy.
func (m *Matcher) Lookup(name string) (domain.PlayerPrediction, MatchTier, bool) {
	key := domain.NormalizeName(name)
	if key == "" {
		return domain.PlayerPrediction{}, "", false
	}
	if p, ok := m.exact[key]; ok {
		return p, MatchExact, true
	}
	if fk := domain.FuzzyKey(key); fk != "" {
		if p, ok := m.fuzzy[fk]; ok {
			return p, MatchFuzzy, true
		}
	}
	return domain.PlayerPrediction{}, "", false
}

// Match extrae el nombre del subtítulo del contrato y lo busca.
// ok=false si el subtítulo no tiene nombre (Match.Name == "") o el jugador no está en el modelo.
func (m *Matcher) Match(c domain.MarketContract) (Match, bool) {
	name, ok := domain.ContractPlayerName(c.Subtitle)
	if !ok {
		return Match{}, false
	}
	p, tier, ok := m.Lookup(name)
	if !ok {
		return Match{Name: name}, false
	}
	return Match{Name: name, Prediction: p, Tier: tier}, true
}

// Size devuelve el número de claves exactas indexadas.
func (m *Matcher) Size() int {
	return len(m.exact)
}
