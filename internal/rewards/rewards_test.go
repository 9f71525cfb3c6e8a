package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paddocklabs/chainderby/internal/race"
)

func TestForPosition(t *testing.T) {
	tests := []struct {
		position   int
		bonus      int
		multiplier float64
	}{
		{1, 1, 0},
		{2, 0, 0.50},
		{3, 0, 0.25},
		{4, 0, 0.10},
		{5, 0, 0.10},
		{12, 0, 0.10},
	}

	for _, tt := range tests {
		r := ForPosition(tt.position)
		assert.Equal(t, tt.bonus, r.BonusActions, "position %d", tt.position)
		assert.Equal(t, tt.multiplier, r.BoostMultiplier, "position %d", tt.position)
	}
}

func TestIssueBoostExpiry(t *testing.T) {
	b := IssueBoost(0.50, 870000)
	assert.Equal(t, int64(872160), b.ExpiresAtHeight)

	assert.True(t, b.ActiveAt(870000))
	assert.True(t, b.ActiveAt(872159))
	assert.False(t, b.ActiveAt(872160), "inert at the expiry height")
	assert.False(t, b.ActiveAt(869999), "not active before award")
}

func TestStackedMultiplier(t *testing.T) {
	tokens := []BoostToken{
		IssueBoost(0.50, 1000),
		IssueBoost(0.25, 1500),
		IssueBoost(0.10, 1000),
	}

	// At height 2000 all three are live.
	assert.InDelta(t, 0.85, StackedMultiplier(tokens, 2000), 1e-9)

	// Past the first two awards' expiry only the latest remains.
	assert.InDelta(t, 0.25, StackedMultiplier(tokens, 3400), 1e-9)

	// Expired tokens contribute nothing even if never spent.
	assert.Equal(t, 0.0, StackedMultiplier(tokens, 10000))
}

func TestBoostedGain(t *testing.T) {
	tokens := []BoostToken{IssueBoost(0.50, 1000)}
	assert.InDelta(t, 15.0, BoostedGain(10, tokens, 1200), 1e-9)
	assert.Equal(t, 10.0, BoostedGain(10, tokens, 5000))
}

func TestDeltasForRace(t *testing.T) {
	results := []race.EntrantResult{
		{CreatureID: "cr-a", Position: 1},
		{CreatureID: "cr-b", Position: 2},
		{CreatureID: "cr-c", Position: 3},
		{CreatureID: "cr-d", Position: 4},
	}

	deltas := DeltasForRace("race-42", results, 870000)
	assert.Len(t, deltas, 4)

	assert.Equal(t, 1, deltas[0].BonusActions)
	assert.Nil(t, deltas[0].Boost)

	assert.Equal(t, 0, deltas[1].BonusActions)
	assert.NotNil(t, deltas[1].Boost)
	assert.Equal(t, 0.50, deltas[1].Boost.Multiplier)
	assert.Equal(t, int64(872160), deltas[1].Boost.ExpiresAtHeight)

	assert.Equal(t, 0.25, deltas[2].Boost.Multiplier)
	assert.Equal(t, 0.10, deltas[3].Boost.Multiplier)

	for _, d := range deltas {
		assert.Equal(t, "race-42", d.RaceID)
	}
}
