// Package rewards turns race finishes into bonus actions and boost tokens.
// Everything here is a pure computation of intended deltas: applying them
// idempotently per (race, creature) pair is the caller's obligation, since
// the engine holds no storage and cannot dedupe repeated applications.
package rewards

import (
	"github.com/paddocklabs/chainderby/internal/race"
)

// BoostLifetimeBlocks is how long a boost token stays spendable, measured
// in chain blocks (roughly three days).
const BoostLifetimeBlocks = 2160

// Reward table by finish position.
const (
	winnerBonusActions = 1
	secondMultiplier   = 0.50
	thirdMultiplier    = 0.25
	fieldMultiplier    = 0.10
)

// Reward is what a finish position earns: an extra bonus action, a boost
// multiplier, or (for positions past the podium) a consolation boost.
type Reward struct {
	BonusActions    int     `json:"bonus_actions"`
	BoostMultiplier float64 `json:"boost_multiplier"`
}

// ForPosition returns the reward for a 1-based finish position.
func ForPosition(position int) Reward {
	switch position {
	case 1:
		return Reward{BonusActions: winnerBonusActions}
	case 2:
		return Reward{BoostMultiplier: secondMultiplier}
	case 3:
		return Reward{BoostMultiplier: thirdMultiplier}
	default:
		return Reward{BoostMultiplier: fieldMultiplier}
	}
}

// BoostToken is a discrete, stackable training multiplier. Tokens expire by
// chain height, not wall clock, and go inert at expiry whether or not they
// were ever spent.
type BoostToken struct {
	Multiplier      float64 `json:"multiplier"`
	AwardedAtHeight int64   `json:"awarded_at_height"`
	ExpiresAtHeight int64   `json:"expires_at_height"`
}

// IssueBoost creates a boost token awarded at the given chain height.
func IssueBoost(multiplier float64, awardedAtHeight int64) BoostToken {
	return BoostToken{
		Multiplier:      multiplier,
		AwardedAtHeight: awardedAtHeight,
		ExpiresAtHeight: awardedAtHeight + BoostLifetimeBlocks,
	}
}

// ActiveAt reports whether the token is still spendable at the given
// height.
func (b BoostToken) ActiveAt(height int64) bool {
	return height >= b.AwardedAtHeight && height < b.ExpiresAtHeight
}

// StackedMultiplier sums the multipliers of every token still active at the
// given height. Tokens are independent and stack additively: two 0.50
// boosts double a gain.
func StackedMultiplier(tokens []BoostToken, height int64) float64 {
	total := 0.0
	for _, b := range tokens {
		if b.ActiveAt(height) {
			total += b.Multiplier
		}
	}
	return total
}

// BoostedGain applies the stacked multiplier of the selected tokens to a
// training gain.
func BoostedGain(gain float64, tokens []BoostToken, height int64) float64 {
	return gain * (1 + StackedMultiplier(tokens, height))
}

// Delta is the intended reward for one entrant of one resolved race. The
// persistence layer must apply it atomically and at most once per
// (RaceID, CreatureID).
type Delta struct {
	RaceID       string      `json:"race_id"`
	CreatureID   string      `json:"creature_id"`
	Position     int         `json:"position"`
	BonusActions int         `json:"bonus_actions,omitempty"`
	Boost        *BoostToken `json:"boost,omitempty"`
}

// DeltasForRace maps ranked weighted-race results to intended reward
// deltas, issuing boost tokens at the given chain height.
func DeltasForRace(raceID string, results []race.EntrantResult, height int64) []Delta {
	deltas := make([]Delta, len(results))
	for i, r := range results {
		reward := ForPosition(r.Position)
		d := Delta{
			RaceID:       raceID,
			CreatureID:   r.CreatureID,
			Position:     r.Position,
			BonusActions: reward.BonusActions,
		}
		if reward.BoostMultiplier > 0 {
			b := IssueBoost(reward.BoostMultiplier, height)
			d.Boost = &b
		}
		deltas[i] = d
	}
	return deltas
}
