package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- NormalizeProbability ---

func TestNormalizeProbability_BothScalesConverge(t *testing.T) {
	assert.Equal(t, 42.0, NormalizeProbability(0.42))
	assert.Equal(t, 42.0, NormalizeProbability(42))
}

func TestNormalizeProbability_Boundaries(t *testing.T) {
	assert.Equal(t, 100.0, NormalizeProbability(1))
	assert.Equal(t, 0.0, NormalizeProbability(0))
	assert.Equal(t, 1.5, NormalizeProbability(1.5))
}

// --- EdgesFor ---

func TestEdgesFor_BothLegs(t *testing.T) {
	c := MarketContract{Ticker: "KXPGATOUR-MAST25-TWOO", YesAsk: 20, NoAsk: 82, Volume: 1500}
	recs := EdgesFor("Tiger Woods", 30, c, OutcomeWin, "Masters")
	require.Len(t, recs, 2)

	yes, no := recs[0], recs[1]
	assert.Equal(t, SideYes, yes.Side)
	assert.Equal(t, 10.0, yes.Edge)
	assert.Equal(t, 30.0, yes.ModelProb)
	assert.Equal(t, 80, yes.Profit)
	assert.Equal(t, 4.0, yes.RewardRatio)

	assert.Equal(t, SideNo, no.Side)
	assert.Equal(t, -12.0, no.Edge)
	assert.Equal(t, 70.0, no.ModelProb)
	assert.Equal(t, 18, no.Profit)

	for _, r := range recs {
		assert.Equal(t, "Tiger Woods", r.Player)
		assert.Equal(t, OutcomeWin, r.Outcome)
		assert.Equal(t, "Masters", r.Event)
		assert.Equal(t, "KXPGATOUR-MAST25-TWOO", r.Ticker)
		assert.Equal(t, int64(1500), r.Volume)
		assert.Equal(t, 30.0, r.ModelYes)
		assert.Equal(t, 70.0, r.ModelNo)
	}
}

func TestEdgesFor_YesAndNoSumTo100(t *testing.T) {
	for _, p := range []float64{0, 0.5, 12.25, 30, 42, 50, 87.5, 99, 100} {
		recs := EdgesFor("x y", p, MarketContract{YesAsk: 10, NoAsk: 90}, OutcomeTop5, "")
		require.Len(t, recs, 2)
		assert.Equal(t, 100.0, recs[0].ModelYes+recs[0].ModelNo, "p=%v", p)
		assert.Equal(t, 100.0, recs[1].ModelYes+recs[1].ModelNo, "p=%v", p)
		assert.Equal(t, 100.0, recs[0].ModelProb+recs[1].ModelProb, "p=%v", p)
	}
}

func TestEdgesFor_RewardRatio(t *testing.T) {
	recs := EdgesFor("x y", 40, MarketContract{YesAsk: 25}, OutcomeTop10, "")
	require.Len(t, recs, 1)
	assert.Equal(t, 25, recs[0].Cost)
	assert.Equal(t, 75, recs[0].Profit)
	assert.Equal(t, 3.0, recs[0].RewardRatio)
}

func TestEdgesFor_MissingAsks(t *testing.T) {
	assert.Empty(t, EdgesFor("x y", 40, MarketContract{}, OutcomeWin, ""))

	// NO ask fuera de (0, 100) no genera record
	recs := EdgesFor("x y", 40, MarketContract{NoAsk: 100}, OutcomeWin, "")
	assert.Empty(t, recs)

	recs = EdgesFor("x y", 40, MarketContract{NoAsk: 55}, OutcomeWin, "")
	require.Len(t, recs, 1)
	assert.Equal(t, SideNo, recs[0].Side)
	assert.Equal(t, 5.0, recs[0].Edge)
}

// --- tiers ---

func TestEdgeTier(t *testing.T) {
	assert.Equal(t, TierHot, EdgeTier(7))
	assert.Equal(t, TierWarm, EdgeTier(5))
	assert.Equal(t, TierWarm, EdgeTier(6.9))
	assert.Equal(t, TierMild, EdgeTier(3))
}

func TestRewardTier(t *testing.T) {
	assert.Equal(t, TierHot, RewardTier(2))
	assert.Equal(t, TierWarm, RewardTier(1))
	assert.Equal(t, TierCool, RewardTier(0.4))
}
