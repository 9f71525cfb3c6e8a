// Package race resolves races deterministically from public seed material.
// Both formats share the engine package's pinned seed→float contract, so
// anyone holding the disclosed seed and the frozen entrant list can
// recompute a published result bit for bit.
package race

import (
	"errors"

	"github.com/paddocklabs/chainderby/internal/stats"
)

// ErrUnknownRaceType is returned when no weight vector exists for the
// requested race type. Defaults are never substituted.
var ErrUnknownRaceType = errors.New("unknown race type")

// MinEntrantsForPayout is the smallest field that pays out; below it every
// payout is zero.
const MinEntrantsForPayout = 3

// EntrantSnapshot freezes a creature's state at race-entry time. Training
// after entry must not affect a race already entered, so the scorer only
// ever sees this copy.
type EntrantSnapshot struct {
	CreatureID string      `json:"creature_id" yaml:"creature_id"`
	Base       stats.Block `json:"base" yaml:"base"`
	Trained    stats.Block `json:"trained" yaml:"trained"`
	Fatigue    float64     `json:"fatigue" yaml:"fatigue"`
	Sharpness  float64     `json:"sharpness" yaml:"sharpness"`
	Signature  string      `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// Effective returns base + trained, the only place effective stats exist.
func (e EntrantSnapshot) Effective() stats.Block {
	return e.Base.Add(e.Trained)
}

// SharpnessFormula selects the sharpness race modifier. Product docs
// describe a x0.80-x1.05 range while the implemented formula is
// x0.90-x1.00; both are kept selectable until that is resolved.
type SharpnessFormula int

const (
	// SharpnessNarrow maps sharpness 0-100 to a x0.90-x1.00 modifier.
	SharpnessNarrow SharpnessFormula = iota
	// SharpnessWide maps sharpness 0-100 to a x0.80-x1.05 modifier.
	SharpnessWide
)

// Params carries the tunables for the weighted aggregate format.
type Params struct {
	// EntryFee per entrant; the pool is len(entrants) * EntryFee.
	EntryFee float64
	// PrizeDistribution is applied by rank index, e.g. [0.50, 0.30, 0.20].
	PrizeDistribution []float64
	// FocusCap for the focus-swing denominator. Zero means the default 80.
	FocusCap float64
	// Sharpness selects the modifier variant; the zero value is the
	// implemented narrow formula.
	Sharpness SharpnessFormula
}

// EntrantResult is one ranked line of a resolved weighted race.
type EntrantResult struct {
	CreatureID       string  `json:"creature_id"`
	Position         int     `json:"position"`
	PerformanceScore float64 `json:"performance_score"`
	Payout           float64 `json:"payout"`
}

// Result is a resolved weighted race.
type Result struct {
	Results   []EntrantResult `json:"results"`
	TotalPool float64         `json:"total_pool"`
}

// Verification is the outcome of replaying a published race. A failed
// verification is an expected, actionable result, never an error.
type Verification struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
