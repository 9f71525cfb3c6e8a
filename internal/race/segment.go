package race

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/paddocklabs/chainderby/internal/engine"
)

// Segment race constants. The payout schedule is fixed for the house
// format: a 5% cut off the top, then 50/30/15 of the prize pot to the
// podium, everything floored to whole units.
const (
	NumSegments  = 10
	rollScale    = 100.0
	swingWidth   = 40.0
	houseCutRate = "0.05"
	firstShare   = "0.50"
	secondShare  = "0.30"
	thirdShare   = "0.15"
)

// SegmentEntrant is an entrant in the house-seeded segment format. The
// signature is the entrant's entry commitment; it both feeds the combined
// seed and labels the entrant's private draw stream.
type SegmentEntrant struct {
	CreatureID      string  `json:"creature_id" yaml:"creature_id"`
	Signature       string  `json:"signature" yaml:"signature"`
	SpeedMultiplier float64 `json:"speed_multiplier" yaml:"speed_multiplier"`
	Consistency     float64 `json:"consistency" yaml:"consistency"`
}

// SegmentEntrantFromSnapshot maps a frozen race snapshot onto the segment
// format's two attributes: speed drives the distance multiplier, effective
// focus share drives consistency (narrower swings).
func SegmentEntrantFromSnapshot(s EntrantSnapshot) SegmentEntrant {
	eff := s.Effective()
	consistency := eff.Focus / (defaultFocusCap + s.Base.Focus)
	if consistency > 1 {
		consistency = 1
	}
	return SegmentEntrant{
		CreatureID:      s.CreatureID,
		Signature:       s.Signature,
		SpeedMultiplier: 1 + eff.Speed/200,
		Consistency:     consistency,
	}
}

// SegmentResult is one ranked line of a resolved segment race.
type SegmentResult struct {
	CreatureID    string  `json:"creature_id"`
	Signature     string  `json:"signature"`
	Position      int     `json:"position"`
	TotalDistance float64 `json:"total_distance"`
	Payout        int64   `json:"payout"`
}

// Simulation is a fully resolved segment race. Segments[s][i] is entrant
// i's distance in segment s (input order); the full history is retained so
// a replay can be audited segment by segment.
type Simulation struct {
	Segments [][]float64     `json:"segments"`
	Results  []SegmentResult `json:"results"`
	TotalPot int64           `json:"total_pot"`
}

// CombinedSeed derives the race seed from the house server seed and every
// entrant's signature. Signatures are sorted first so the seed does not
// depend on entry order.
func CombinedSeed(serverSeed string, signatures []string) string {
	sorted := append([]string(nil), signatures...)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(serverSeed))
	for _, sig := range sorted {
		h.Write([]byte(sig))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SimulateSegmentRace runs the fixed-segment distance race. Every entrant
// draws from its own stream labelled by its signature under the combined
// seed, so per-entrant distances are independent of entry order. Each
// segment an entrant covers (roll + varianceSwing) * speedMultiplier, where
// lower consistency widens the swing.
func SimulateSegmentRace(combinedSeed string, entrants []SegmentEntrant, entryFee int64) Simulation {
	streams := make([]*engine.Stream, len(entrants))
	for i, e := range entrants {
		streams[i] = engine.NewStream(combinedSeed, e.Signature)
	}

	segments := make([][]float64, NumSegments)
	totals := make([]float64, len(entrants))
	for s := 0; s < NumSegments; s++ {
		segments[s] = make([]float64, len(entrants))
		for i, e := range entrants {
			roll := streams[i].NextFloat() * rollScale
			varianceSwing := (streams[i].NextFloat() - 0.5) * (1 - e.Consistency) * swingWidth
			dist := (roll + varianceSwing) * e.SpeedMultiplier
			segments[s][i] = dist
			totals[i] += dist
		}
	}

	results := make([]SegmentResult, len(entrants))
	for i, e := range entrants {
		results[i] = SegmentResult{
			CreatureID:    e.CreatureID,
			Signature:     e.Signature,
			TotalDistance: totals[i],
		}
	}
	sort.Slice(results, func(a, b int) bool {
		if results[a].TotalDistance != results[b].TotalDistance {
			return results[a].TotalDistance > results[b].TotalDistance
		}
		return results[a].Signature < results[b].Signature
	})

	totalPot := entryFee * int64(len(entrants))
	payouts := segmentPayouts(totalPot)
	for i := range results {
		results[i].Position = i + 1
		if i < len(payouts) {
			results[i].Payout = payouts[i]
		}
	}

	return Simulation{Segments: segments, Results: results, TotalPot: totalPot}
}

// segmentPayouts splits the pot: 5% house cut floored, then 50/30/15 of
// the remaining prize pot to ranks 1-3, each floored.
func segmentPayouts(totalPot int64) [3]int64 {
	pot := decimal.NewFromInt(totalPot)
	houseCut := pot.Mul(decimal.RequireFromString(houseCutRate)).Floor()
	prizePot := pot.Sub(houseCut)

	var out [3]int64
	for i, share := range []string{firstShare, secondShare, thirdShare} {
		out[i] = prizePot.Mul(decimal.RequireFromString(share)).Floor().IntPart()
	}
	return out
}
