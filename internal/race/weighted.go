package race

import (
	"math"
	"sort"

	"github.com/paddocklabs/chainderby/internal/engine"
	"github.com/paddocklabs/chainderby/internal/stats"
)

const (
	defaultFocusCap = 80.0
	maxFocusSwing   = 0.30
)

// ScoreRace resolves a weighted aggregate race. Each entrant's effective
// stats are weighted by the race type's vector, modified by condition, and
// perturbed by bounded deterministic noise derived from the seed material
// and the entrant's identity. Given identical arguments the output is
// byte-identical on every call; ties on final score break by ascending
// creature ID so independent implementations agree on ranking too.
func ScoreRace(entrants []EntrantSnapshot, raceType string, weights map[string]stats.Block, seedMaterial string, params Params) (Result, error) {
	w, ok := weights[raceType]
	if !ok {
		return Result{}, ErrUnknownRaceType
	}

	focusCap := params.FocusCap
	if focusCap == 0 {
		focusCap = defaultFocusCap
	}

	results := make([]EntrantResult, len(entrants))
	for i, e := range entrants {
		eff := e.Effective()

		basePower := 0.0
		for _, name := range stats.Names {
			basePower += eff.Get(name) * w.Get(name)
		}

		fatigueMod := 1.0 - clampCondition(e.Fatigue)/200
		sharpnessMod := sharpnessModifier(clampCondition(e.Sharpness), params.Sharpness)

		noise := engine.NewStream(seedMaterial, e.CreatureID).NextSigned()

		// High effective focus compresses the possible swing toward zero.
		focusSwing := maxFocusSwing * (1 - eff.Focus/(focusCap+e.Base.Focus))

		results[i] = EntrantResult{
			CreatureID:       e.CreatureID,
			PerformanceScore: basePower * fatigueMod * sharpnessMod * (1 + noise*focusSwing),
		}
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].PerformanceScore != results[b].PerformanceScore {
			return results[a].PerformanceScore > results[b].PerformanceScore
		}
		return results[a].CreatureID < results[b].CreatureID
	})

	totalPool := params.EntryFee * float64(len(entrants))
	for i := range results {
		results[i].Position = i + 1
		if len(entrants) >= MinEntrantsForPayout && i < len(params.PrizeDistribution) {
			results[i].Payout = math.Round(totalPool*params.PrizeDistribution[i]*100) / 100
		}
	}

	return Result{Results: results, TotalPool: totalPool}, nil
}

func sharpnessModifier(sharpness float64, formula SharpnessFormula) float64 {
	if formula == SharpnessWide {
		return 0.80 + sharpness/400
	}
	return 0.90 + sharpness/1000
}

func clampCondition(v float64) float64 {
	if v < stats.ConditionMin {
		return stats.ConditionMin
	}
	if v > stats.ConditionMax {
		return stats.ConditionMax
	}
	return v
}
