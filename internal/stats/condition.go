package stats

import "time"

// Condition bounds.
const (
	ConditionMin = 0.0
	ConditionMax = 100.0
)

// Decay rates, expressed per 24 elapsed hours and prorated continuously.
const (
	fatigueDecayPerDay   = 3.0
	sharpnessDecayPerDay = 10.0
	sharpnessGraceHours  = 24.0
)

// DecayFormula selects the fatigue-decay variant. Product documentation and
// the implemented formula disagree on whether decay is rate-scaled by the
// current fatigue tier; both are kept selectable until that is resolved.
type DecayFormula int

const (
	// DecayFlat decays fatigue at a flat 3 points per day.
	DecayFlat DecayFormula = iota
	// DecayRateScaled decays at half rate below fatigue 30 and at 1.5x
	// above 60, matching the documented behavior.
	DecayRateScaled
)

// Condition is a creature's fatigue/sharpness state plus the timestamp of
// its last qualifying action. LastActionAt is nil for a creature that has
// never acted.
type Condition struct {
	Fatigue      float64    `json:"fatigue"`
	Sharpness    float64    `json:"sharpness"`
	LastActionAt *time.Time `json:"last_action_at,omitempty"`
}

// Decay returns fatigue and sharpness after pure time decay between
// lastActionAt and now. Fatigue decays linearly from the moment of the last
// action; sharpness holds for a 24h grace window and then decays. With no
// last-action timestamp the inputs are returned clamped but otherwise
// unchanged. Outputs are rounded to two decimals and clamped to [0,100].
func Decay(fatigue, sharpness float64, lastActionAt *time.Time, now time.Time, formula DecayFormula) (float64, float64) {
	fatigue = clamp(fatigue, ConditionMin, ConditionMax)
	sharpness = clamp(sharpness, ConditionMin, ConditionMax)

	if lastActionAt == nil {
		return fatigue, sharpness
	}

	hours := now.Sub(*lastActionAt).Hours()
	if hours <= 0 {
		return fatigue, sharpness
	}

	switch formula {
	case DecayRateScaled:
		fatigue = decayFatigueScaled(fatigue, hours)
	default:
		fatigue -= fatigueDecayPerDay * hours / 24
	}

	if hours > sharpnessGraceHours {
		sharpness -= sharpnessDecayPerDay * (hours - sharpnessGraceHours) / 24
	}

	fatigue = round2(clamp(fatigue, ConditionMin, ConditionMax))
	sharpness = round2(clamp(sharpness, ConditionMin, ConditionMax))
	return fatigue, sharpness
}

// decayFatigueScaled integrates the tiered decay rate: 1.5x the base rate
// while fatigue is above 60, half rate below 30, base rate in between. The
// rate changes as fatigue crosses a tier boundary mid-window.
func decayFatigueScaled(fatigue, hours float64) float64 {
	type tier struct {
		floor float64
		mult  float64
	}
	tiers := []tier{
		{floor: 60, mult: 1.5},
		{floor: 30, mult: 1.0},
		{floor: 0, mult: 0.5},
	}

	remaining := hours
	for _, tr := range tiers {
		if remaining <= 0 || fatigue <= 0 {
			break
		}
		if fatigue <= tr.floor {
			continue
		}
		rate := fatigueDecayPerDay * tr.mult / 24
		hoursToFloor := (fatigue - tr.floor) / rate
		if hoursToFloor >= remaining {
			fatigue -= rate * remaining
			remaining = 0
		} else {
			fatigue = tr.floor
			remaining -= hoursToFloor
		}
	}
	return fatigue
}
