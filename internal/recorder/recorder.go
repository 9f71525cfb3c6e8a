// Package recorder persists resolved races for audit. It is a reference
// implementation of the persistence collaborator: the engine packages never
// import it, and the CLI wires it in only when a database path is given.
package recorder

import (
	"github.com/paddocklabs/chainderby/internal/race"
	"github.com/paddocklabs/chainderby/internal/rewards"
)

// WeightedRaceRecord holds everything needed to re-verify a weighted race
// later: the seed material, frozen entrants and the published results.
type WeightedRaceRecord struct {
	RaceID       string
	RaceType     string
	SeedMaterial string
	Entrants     []race.EntrantSnapshot
	Result       race.Result
	Deltas       []rewards.Delta
}

// SegmentRaceRecord holds a resolved segment race and its commitment.
type SegmentRaceRecord struct {
	RaceID        string
	ServerSeed    string
	PublishedHash string
	EntryFee      int64
	Entrants      []race.SegmentEntrant
	Simulation    race.Simulation
}

// Recorder persists resolved races.
type Recorder interface {
	RecordWeightedRace(rec *WeightedRaceRecord) error
	RecordSegmentRace(rec *SegmentRaceRecord) error
	Close() error
}
