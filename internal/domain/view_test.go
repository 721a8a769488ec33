package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(player string, side Side, outcome OutcomeType, edge float64, cost int) EdgeRecord {
	return EdgeRecord{
		Player:      player,
		Side:        side,
		Outcome:     outcome,
		Edge:        edge,
		Cost:        cost,
		Profit:      100 - cost,
		RewardRatio: float64(100-cost) / float64(cost),
	}
}

func edges(v View) []float64 {
	out := make([]float64, len(v.Records))
	for i, r := range v.Records {
		out[i] = r.Edge
	}
	return out
}

func TestApplyView_ThresholdInclusive(t *testing.T) {
	records := []EdgeRecord{
		rec("a a", SideYes, OutcomeWin, 2, 10),
		rec("b b", SideYes, OutcomeWin, 5, 10),
		rec("c c", SideYes, OutcomeWin, 7, 10),
		rec("d d", SideYes, OutcomeWin, 10, 10),
	}
	v := ApplyView(records, ViewParams{MinEdge: 5, Sort: SortEdge})
	assert.ElementsMatch(t, []float64{5, 7, 10}, edges(v))
	assert.Equal(t, []float64{10, 7, 5}, edges(v))
}

func TestApplyView_SideAndOutcomeFilters(t *testing.T) {
	records := []EdgeRecord{
		rec("a a", SideYes, OutcomeWin, 8, 10),
		rec("b b", SideNo, OutcomeWin, 9, 80),
		rec("c c", SideYes, OutcomeTop10, 6, 30),
		rec("d d", SideNo, OutcomeTop10, 12, 60),
	}

	v := ApplyView(records, ViewParams{MinEdge: 3, Side: SideNo})
	require.Len(t, v.Records, 2)
	assert.Equal(t, "d d", v.Records[0].Player)
	assert.Equal(t, "b b", v.Records[1].Player)

	v = ApplyView(records, ViewParams{MinEdge: 3, Outcome: OutcomeTop10})
	require.Len(t, v.Records, 2)
	assert.Equal(t, []float64{12, 6}, edges(v))

	v = ApplyView(records, ViewParams{MinEdge: 3, Side: SideYes, Outcome: OutcomeWin})
	require.Len(t, v.Records, 1)
	assert.Equal(t, "a a", v.Records[0].Player)
}

func TestApplyView_SortKeys(t *testing.T) {
	records := []EdgeRecord{
		rec("cheap", SideYes, OutcomeWin, 6, 5),   // rr 19, profit 95
		rec("mid", SideYes, OutcomeWin, 9, 40),    // rr 1.5, profit 60
		rec("pricey", SideNo, OutcomeWin, 12, 90), // rr 0.11, profit 10
	}

	byRR := ApplyView(records, ViewParams{Sort: SortRewardRatio})
	assert.Equal(t, "cheap", byRR.Records[0].Player)
	assert.Equal(t, "pricey", byRR.Records[2].Player)

	byProfit := ApplyView(records, ViewParams{Sort: SortProfit})
	assert.Equal(t, []string{"cheap", "mid", "pricey"}, []string{
		byProfit.Records[0].Player, byProfit.Records[1].Player, byProfit.Records[2].Player,
	})

	byEdge := ApplyView(records, ViewParams{Sort: SortEdge})
	assert.Equal(t, "pricey", byEdge.Records[0].Player)
}

func TestApplyView_StableTieBreak(t *testing.T) {
	records := []EdgeRecord{
		rec("first", SideYes, OutcomeWin, 6, 20),
		rec("second", SideNo, OutcomeWin, 6, 20),
		rec("third", SideYes, OutcomeTop5, 6, 20),
	}
	v := ApplyView(records, ViewParams{MinEdge: 5})
	require.Len(t, v.Records, 3)
	assert.Equal(t, "first", v.Records[0].Player)
	assert.Equal(t, "second", v.Records[1].Player)
	assert.Equal(t, "third", v.Records[2].Player)
}

func TestApplyView_Summary(t *testing.T) {
	records := []EdgeRecord{
		rec("a a", SideYes, OutcomeWin, 6, 10),
		rec("b b", SideNo, OutcomeWin, 10, 80),
		rec("c c", SideYes, OutcomeWin, 8, 30),
		rec("d d", SideNo, OutcomeWin, -4, 30),
	}
	v := ApplyView(records, ViewParams{MinEdge: 5})
	assert.Equal(t, Summary{Count: 3, YesCount: 2, NoCount: 1, AvgEdge: 8}, v.Summary)
}

func TestApplyView_EmptyHasZeroAverage(t *testing.T) {
	v := ApplyView([]EdgeRecord{rec("a a", SideYes, OutcomeWin, 1, 10)}, ViewParams{MinEdge: 5})
	assert.Empty(t, v.Records)
	assert.Equal(t, Summary{}, v.Summary)

	v = ApplyView(nil, DefaultViewParams())
	assert.Equal(t, 0.0, v.Summary.AvgEdge)
}

func TestApplyView_DoesNotMutateInput(t *testing.T) {
	records := []EdgeRecord{
		rec("low", SideYes, OutcomeWin, 6, 10),
		rec("high", SideYes, OutcomeWin, 9, 10),
	}
	_ = ApplyView(records, ViewParams{})
	assert.Equal(t, "low", records[0].Player)
	assert.Equal(t, "high", records[1].Player)
}

// --- parsing ---

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"": SortEdge, "Edge": SortEdge, "R/R": SortRewardRatio, "rr": SortRewardRatio, "Profit": SortProfit,
	} {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSortKey("volume")
	assert.Error(t, err)
}

func TestParseSide(t *testing.T) {
	s, err := ParseSide("yes")
	require.NoError(t, err)
	assert.Equal(t, SideYes, s)

	s, err = ParseSide("All")
	require.NoError(t, err)
	assert.Equal(t, Side(""), s)

	_, err = ParseSide("maybe")
	assert.Error(t, err)
}

func TestParseOutcome(t *testing.T) {
	for in, want := range map[string]OutcomeType{
		"win": OutcomeWin, "Top 5": OutcomeTop5, "top_10": OutcomeTop10, "TOP20": OutcomeTop20, "All": "",
	} {
		got, err := ParseOutcome(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOutcome("make_cut")
	assert.Error(t, err)
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopePreTournament, s)

	s, err = ParseScope("in-play")
	require.NoError(t, err)
	assert.Equal(t, ScopeLive, s)

	_, err = ParseScope("weekly")
	assert.Error(t, err)
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "Top 10", OutcomeTop10.Label())
	assert.Equal(t, "Win", OutcomeWin.Label())
	assert.True(t, OutcomeTop20.Valid())
	assert.False(t, OutcomeType("make_cut").Valid())
}
