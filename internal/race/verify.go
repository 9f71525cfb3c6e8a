package race

import (
	"fmt"

	"github.com/paddocklabs/chainderby/internal/engine"
	"github.com/paddocklabs/chainderby/internal/stats"
)

// VerifySegmentRace replays a published segment race from the disclosed
// server seed. It checks the seed against the pre-race commitment, reruns
// the simulation from the original entrant list, and compares every
// published result field by field, reporting the first mismatch.
func VerifySegmentRace(serverSeed, publishedHash string, entrants []SegmentEntrant, entryFee int64, published []SegmentResult) Verification {
	if engine.CommitSeed(serverSeed) != publishedHash {
		return Verification{Reason: "server seed does not match the published hash"}
	}

	sigs := make([]string, len(entrants))
	for i, e := range entrants {
		sigs[i] = e.Signature
	}
	sim := SimulateSegmentRace(CombinedSeed(serverSeed, sigs), entrants, entryFee)

	if len(published) != len(sim.Results) {
		return Verification{Reason: fmt.Sprintf("result count mismatch: published %d, recomputed %d", len(published), len(sim.Results))}
	}

	for i, want := range sim.Results {
		got := published[i]
		switch {
		case got.CreatureID != want.CreatureID:
			return Verification{Reason: fmt.Sprintf("position %d: expected creature %s, published %s", i+1, want.CreatureID, got.CreatureID)}
		case got.Signature != want.Signature:
			return Verification{Reason: fmt.Sprintf("position %d: signature mismatch for creature %s", i+1, want.CreatureID)}
		case got.Position != want.Position:
			return Verification{Reason: fmt.Sprintf("position %d: expected rank %d, published %d", i+1, want.Position, got.Position)}
		case got.TotalDistance != want.TotalDistance:
			return Verification{Reason: fmt.Sprintf("position %d: expected distance %.6f, published %.6f", i+1, want.TotalDistance, got.TotalDistance)}
		case got.Payout != want.Payout:
			return Verification{Reason: fmt.Sprintf("position %d: expected payout %d, published %d", i+1, want.Payout, got.Payout)}
		}
	}

	return Verification{Valid: true}
}

// VerifyWeightedRace replays a published weighted race from the disclosed
// seed material and the frozen entrant list, comparing every published
// field against the recomputed result.
func VerifyWeightedRace(entrants []EntrantSnapshot, raceType string, weights map[string]stats.Block, seedMaterial string, params Params, published Result) Verification {
	recomputed, err := ScoreRace(entrants, raceType, weights, seedMaterial, params)
	if err != nil {
		return Verification{Reason: fmt.Sprintf("recompute failed: %v", err)}
	}

	if published.TotalPool != recomputed.TotalPool {
		return Verification{Reason: fmt.Sprintf("total pool mismatch: published %.2f, recomputed %.2f", published.TotalPool, recomputed.TotalPool)}
	}
	if len(published.Results) != len(recomputed.Results) {
		return Verification{Reason: fmt.Sprintf("result count mismatch: published %d, recomputed %d", len(published.Results), len(recomputed.Results))}
	}

	for i, want := range recomputed.Results {
		got := published.Results[i]
		switch {
		case got.CreatureID != want.CreatureID:
			return Verification{Reason: fmt.Sprintf("position %d: expected creature %s, published %s", i+1, want.CreatureID, got.CreatureID)}
		case got.Position != want.Position:
			return Verification{Reason: fmt.Sprintf("position %d: expected rank %d, published %d", i+1, want.Position, got.Position)}
		case got.PerformanceScore != want.PerformanceScore:
			return Verification{Reason: fmt.Sprintf("position %d: score mismatch for creature %s", i+1, want.CreatureID)}
		case got.Payout != want.Payout:
			return Verification{Reason: fmt.Sprintf("position %d: expected payout %.2f, published %.2f", i+1, want.Payout, got.Payout)}
		}
	}

	return Verification{Valid: true}
}
