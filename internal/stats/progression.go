package stats

import "errors"

const (
	// PerStatCap bounds each trained stat.
	PerStatCap = 80.0
	// TotalBudget bounds the sum of all six trained stats.
	TotalBudget = 300.0

	// Every committed training action sharpens the creature by a fixed
	// amount; decay brings it back down over time.
	sharpnessGainPerAction = 20.0
)

// ErrUnknownActivity is returned when an activity id has no definition in
// the supplied config. Training math must never fall back to defaults: a
// silently substituted gain could not be re-verified later.
var ErrUnknownActivity = errors.New("unknown activity")

// Activity defines a training activity: which stats it targets, the base
// gains before diminishing returns, and its fatigue cost. Supplied whole by
// the caller; never cached or mutated here.
type Activity struct {
	Primary       string  `json:"primary" yaml:"primary"`
	PrimaryGain   float64 `json:"primary_gain" yaml:"primary_gain"`
	Secondary     string  `json:"secondary" yaml:"secondary"`
	SecondaryGain float64 `json:"secondary_gain" yaml:"secondary_gain"`
	FatigueCost   float64 `json:"fatigue_cost" yaml:"fatigue_cost"`
}

// Gains is the intended outcome of one training action. The caller applies
// it to persistent state; nothing is mutated here.
type Gains struct {
	StatChanges    Block   `json:"stat_changes"`
	FatigueDelta   float64 `json:"fatigue_delta"`
	SharpnessDelta float64 `json:"sharpness_delta"`
}

// ComputeGains calculates the stat gains for one training action against the
// current trained stats. Gains diminish linearly as the targeted stat
// approaches PerStatCap, are clamped so no stat exceeds the cap, and are
// proportionally scaled down so the six-stat total never exceeds
// TotalBudget. All stored values are rounded to two decimals.
func ComputeGains(activityID string, current Block, activities map[string]Activity) (Gains, error) {
	act, ok := activities[activityID]
	if !ok {
		return Gains{}, ErrUnknownActivity
	}

	raw := map[string]float64{}
	raw[act.Primary] += diminished(act.PrimaryGain, current.Get(act.Primary))
	if act.Secondary != "" && act.SecondaryGain > 0 {
		// If primary and secondary coincide the two gains sum, each
		// diminished against the same current value.
		raw[act.Secondary] += diminished(act.SecondaryGain, current.Get(act.Secondary))
	}

	// Per-stat clamp: never push a stat past the cap.
	gainsTotal := 0.0
	for name, g := range raw {
		if current.Get(name)+g > PerStatCap {
			g = PerStatCap - current.Get(name)
			if g < 0 {
				g = 0
			}
			raw[name] = g
		}
		gainsTotal += g
	}

	// Total-budget clamp: scale every gain by the remaining budget share.
	if budget := TotalBudget - current.Total(); gainsTotal > budget {
		if budget <= 0 {
			for name := range raw {
				raw[name] = 0
			}
		} else {
			scale := budget / gainsTotal
			for name := range raw {
				raw[name] *= scale
			}
		}
	}

	var changes Block
	for name, g := range raw {
		changes.Set(name, round2(g))
	}

	return Gains{
		StatChanges:    changes,
		FatigueDelta:   act.FatigueCost,
		SharpnessDelta: sharpnessGainPerAction,
	}, nil
}

// diminished applies linear diminishing returns toward PerStatCap.
func diminished(baseGain, current float64) float64 {
	g := baseGain * (1 - current/PerStatCap)
	if g < 0 {
		return 0
	}
	return g
}
