package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddocklabs/chainderby/internal/stats"
)

const blockHash = "00000000000000000003a2f5c8e17b6d94c0ffee5351e9b17e9d5b4c1a2f0d4b"

func sprintWeights() map[string]stats.Block {
	return map[string]stats.Block{
		"sprint":      {Speed: 1.5, Stamina: 0.2, Accel: 1.2, Agility: 0.8, Heart: 0.3, Focus: 0.5},
		"speed_trial": {Speed: 1.0},
	}
}

func testField() []EntrantSnapshot {
	return []EntrantSnapshot{
		{CreatureID: "cr-001", Base: stats.Block{Speed: 60, Stamina: 40, Accel: 55, Agility: 45, Heart: 50, Focus: 35}, Trained: stats.Block{Speed: 20, Accel: 10}, Fatigue: 15, Sharpness: 70},
		{CreatureID: "cr-002", Base: stats.Block{Speed: 55, Stamina: 50, Accel: 50, Agility: 50, Heart: 45, Focus: 60}, Trained: stats.Block{Speed: 25, Focus: 15}, Fatigue: 40, Sharpness: 90},
		{CreatureID: "cr-003", Base: stats.Block{Speed: 70, Stamina: 30, Accel: 60, Agility: 40, Heart: 55, Focus: 20}, Trained: stats.Block{Stamina: 30}, Fatigue: 0, Sharpness: 50},
		{CreatureID: "cr-004", Base: stats.Block{Speed: 45, Stamina: 60, Accel: 45, Agility: 55, Heart: 60, Focus: 50}, Trained: stats.Block{Agility: 20, Heart: 10}, Fatigue: 80, Sharpness: 30},
	}
}

func TestScoreRaceUnknownRaceType(t *testing.T) {
	_, err := ScoreRace(testField(), "marathon", sprintWeights(), blockHash, Params{})
	require.ErrorIs(t, err, ErrUnknownRaceType)
}

func TestScoreRaceDeterministic(t *testing.T) {
	params := Params{EntryFee: 50, PrizeDistribution: []float64{0.5, 0.3, 0.2}}

	first, err := ScoreRace(testField(), "sprint", sprintWeights(), blockHash, params)
	require.NoError(t, err)
	second, err := ScoreRace(testField(), "sprint", sprintWeights(), blockHash, params)
	require.NoError(t, err)

	require.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		// Scores must match to the bit, not within a tolerance.
		assert.Equal(t, first.Results[i], second.Results[i])
	}
	assert.Equal(t, first.TotalPool, second.TotalPool)
}

func TestScoreRaceDifferentSeedsDiverge(t *testing.T) {
	a, err := ScoreRace(testField(), "sprint", sprintWeights(), blockHash, Params{})
	require.NoError(t, err)
	b, err := ScoreRace(testField(), "sprint", sprintWeights(), "a different block hash", Params{})
	require.NoError(t, err)

	diverged := false
	for _, ra := range a.Results {
		for _, rb := range b.Results {
			if ra.CreatureID == rb.CreatureID && ra.PerformanceScore != rb.PerformanceScore {
				diverged = true
			}
		}
	}
	assert.True(t, diverged, "different seed material must change scores")
}

func TestScoreRaceSwingBounds(t *testing.T) {
	// Single-stat race: effective speed 50, fatigue 0, sharpness 100,
	// base focus 0 and trained focus 40 → focusSwing 0.30*(1-40/80)=0.15.
	// Whatever the noise draw, the score stays within [42.5, 57.5].
	entrant := EntrantSnapshot{
		CreatureID: "cr-bound",
		Base:       stats.Block{Speed: 30},
		Trained:    stats.Block{Speed: 20, Focus: 40},
		Sharpness:  100,
	}

	for _, seed := range []string{blockHash, "seed-b", "seed-c", "seed-d", "seed-e"} {
		res, err := ScoreRace([]EntrantSnapshot{entrant}, "speed_trial", sprintWeights(), seed, Params{})
		require.NoError(t, err)
		score := res.Results[0].PerformanceScore
		assert.GreaterOrEqual(t, score, 42.5)
		assert.LessOrEqual(t, score, 57.5)
	}
}

func TestScoreRaceConditionModifiers(t *testing.T) {
	weights := map[string]stats.Block{"flat": {Speed: 1.0}}
	base := EntrantSnapshot{CreatureID: "cr-x", Base: stats.Block{Speed: 100, Focus: 80}, Trained: stats.Block{Focus: 80}}

	// Full focus zeroes the swing, isolating the condition modifiers.
	fresh := base
	fresh.Sharpness = 100
	res, err := ScoreRace([]EntrantSnapshot{fresh}, "flat", weights, blockHash, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Results[0].PerformanceScore, 1e-9)

	tired := base
	tired.Fatigue = 100
	tired.Sharpness = 100
	res, err = ScoreRace([]EntrantSnapshot{tired}, "flat", weights, blockHash, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.Results[0].PerformanceScore, 1e-9)

	dull := base
	dull.Sharpness = 0
	res, err = ScoreRace([]EntrantSnapshot{dull}, "flat", weights, blockHash, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, res.Results[0].PerformanceScore, 1e-9)
}

func TestScoreRaceSharpnessWideVariant(t *testing.T) {
	weights := map[string]stats.Block{"flat": {Speed: 1.0}}
	e := EntrantSnapshot{CreatureID: "cr-x", Base: stats.Block{Speed: 100, Focus: 80}, Trained: stats.Block{Focus: 80}, Sharpness: 100}

	res, err := ScoreRace([]EntrantSnapshot{e}, "flat", weights, blockHash, Params{Sharpness: SharpnessWide})
	require.NoError(t, err)
	assert.InDelta(t, 105.0, res.Results[0].PerformanceScore, 1e-9)

	e.Sharpness = 0
	res, err = ScoreRace([]EntrantSnapshot{e}, "flat", weights, blockHash, Params{Sharpness: SharpnessWide})
	require.NoError(t, err)
	assert.InDelta(t, 80.0, res.Results[0].PerformanceScore, 1e-9)
}

func TestScoreRaceZeroWeightTieBreak(t *testing.T) {
	// A zero-weight vector collapses every score to 0; ranking must fall
	// back to ascending creature ID, not input order.
	weights := map[string]stats.Block{"void": {}}
	entrants := []EntrantSnapshot{
		{CreatureID: "cr-charlie"},
		{CreatureID: "cr-alpha"},
		{CreatureID: "cr-bravo"},
	}

	res, err := ScoreRace(entrants, "void", weights, blockHash, Params{})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "cr-alpha", res.Results[0].CreatureID)
	assert.Equal(t, "cr-bravo", res.Results[1].CreatureID)
	assert.Equal(t, "cr-charlie", res.Results[2].CreatureID)
	for i, r := range res.Results {
		assert.Equal(t, i+1, r.Position)
		assert.Equal(t, 0.0, r.PerformanceScore)
	}
}

func TestScoreRacePayouts(t *testing.T) {
	params := Params{EntryFee: 100, PrizeDistribution: []float64{0.5, 0.3, 0.2}}

	res, err := ScoreRace(testField(), "sprint", sprintWeights(), blockHash, params)
	require.NoError(t, err)
	assert.Equal(t, 400.0, res.TotalPool)
	assert.Equal(t, 200.0, res.Results[0].Payout)
	assert.Equal(t, 120.0, res.Results[1].Payout)
	assert.Equal(t, 80.0, res.Results[2].Payout)
	assert.Equal(t, 0.0, res.Results[3].Payout)
}

func TestScoreRaceUnderMinimumEntrantsNoPayout(t *testing.T) {
	params := Params{EntryFee: 100, PrizeDistribution: []float64{0.5, 0.3, 0.2}}
	entrants := testField()[:2]

	res, err := ScoreRace(entrants, "sprint", sprintWeights(), blockHash, params)
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.TotalPool)
	for _, r := range res.Results {
		assert.Equal(t, 0.0, r.Payout)
	}
}
