package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey es la clave de orden de la vista (siempre descendente).
type SortKey string

const (
	SortEdge        SortKey = "edge"
	SortRewardRatio SortKey = "rr"
	SortProfit      SortKey = "profit"
)

// ParseSortKey acepta "edge", "rr", "r/r", "reward_ratio" y "profit". "" devuelve SortEdge.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "edge":
		return SortEdge, nil
	case "rr", "r/r", "reward_ratio":
		return SortRewardRatio, nil
	case "profit":
		return SortProfit, nil
	}
	return "", fmt.Errorf("domain.ParseSortKey: unknown sort key %q", s)
}

// MinEdgeChoices son los umbrales que ofrece la capa de presentación.
var MinEdgeChoices = []float64{3, 5, 7, 10}

// ViewParams son los parámetros que elige el usuario sobre un scan.
// Side y Outcome vacíos significan "todos".
type ViewParams struct {
	MinEdge float64
	Side    Side
	Outcome OutcomeType
	Sort    SortKey
}

// DefaultViewParams devuelve los parámetros por defecto del dashboard: edge ≥ 5, orden por edge.
func DefaultViewParams() ViewParams {
	return ViewParams{MinEdge: 5, Sort: SortEdge}
}

// Summary son las estadísticas agregadas de una vista filtrada.
type Summary struct {
	Count    int     `json:"count"`
	YesCount int     `json:"yes_count"`
	NoCount  int     `json:"no_count"`
	AvgEdge  float64 `json:"avg_edge"`
}

// View es el resultado de aplicar ViewParams a los records de un scan.
type View struct {
	Params  ViewParams   `json:"-"`
	Records []EdgeRecord `json:"records"`
	Summary Summary      `json:"summary"`
}

// ApplyView filtra (edge ≥ MinEdge, lado, mercado), ordena descendente por la clave elegida
// y calcula el resumen. El orden es estable: a igual clave se conserva el orden del scan.
// No modifica records.
func ApplyView(records []EdgeRecord, p ViewParams) View {
	filtered := make([]EdgeRecord, 0, len(records))
	for _, r := range records {
		if r.Edge < p.MinEdge {
			continue
		}
		if p.Side != "" && r.Side != p.Side {
			continue
		}
		if p.Outcome != "" && r.Outcome != p.Outcome {
			continue
		}
		filtered = append(filtered, r)
	}

	key := sortValue(p.Sort)
	sort.SliceStable(filtered, func(i, j int) bool {
		return key(filtered[i]) > key(filtered[j])
	})

	return View{Params: p, Records: filtered, Summary: summarize(filtered)}
}

func sortValue(k SortKey) func(EdgeRecord) float64 {
	switch k {
	case SortRewardRatio:
		return func(r EdgeRecord) float64 { return r.RewardRatio }
	case SortProfit:
		return func(r EdgeRecord) float64 { return float64(r.Profit) }
	}
	return func(r EdgeRecord) float64 { return r.Edge }
}

func summarize(records []EdgeRecord) Summary {
	s := Summary{Count: len(records)}
	var total float64
	for _, r := range records {
		switch r.Side {
		case SideYes:
			s.YesCount++
		case SideNo:
			s.NoCount++
		}
		total += r.Edge
	}
	if s.Count > 0 {
		s.AvgEdge = total / float64(s.Count)
	}
	return s
}
