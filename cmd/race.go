package cmd

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paddocklabs/chainderby/internal/config"
	"github.com/paddocklabs/chainderby/internal/engine"
	"github.com/paddocklabs/chainderby/internal/race"
	"github.com/paddocklabs/chainderby/internal/recorder"
	"github.com/paddocklabs/chainderby/internal/rewards"
)

var (
	raceFilePath string
	seedMaterial string
	blockHeight  int64

	serverSeed      string
	entryFee        int64
	publishedHash   string
	publishedResult string
)

// raceFile is the race fixture: a frozen entrant list plus the race type.
type raceFile struct {
	RaceID   string                 `yaml:"race_id"`
	RaceType string                 `yaml:"race_type"`
	Entrants []race.EntrantSnapshot `yaml:"entrants"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Resolve a weighted aggregate race from a block hash",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			logrus.Fatalf("load config: %v", err)
		}
		rf, err := loadRaceFile(raceFilePath)
		if err != nil {
			logrus.Fatalf("load race file: %v", err)
		}

		params := race.Params{
			EntryFee:          cfg.EntryFee,
			PrizeDistribution: cfg.PrizeDistribution,
		}
		result, err := race.ScoreRace(rf.Entrants, rf.RaceType, cfg.RaceTypeWeights, seedMaterial, params)
		if err != nil {
			logrus.Fatalf("score race: %v", err)
		}
		deltas := rewards.DeltasForRace(rf.RaceID, result.Results, blockHeight)

		rec := openRecorder()
		defer rec.Close()
		err = rec.RecordWeightedRace(&recorder.WeightedRaceRecord{
			RaceID:       rf.RaceID,
			RaceType:     rf.RaceType,
			SeedMaterial: seedMaterial,
			Entrants:     rf.Entrants,
			Result:       result,
			Deltas:       deltas,
		})
		if err != nil {
			logrus.Errorf("record race: %v", err)
		}

		printJSON(map[string]any{"result": result, "reward_deltas": deltas})
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a house-seeded segment race",
	Run: func(cmd *cobra.Command, args []string) {
		rf, err := loadRaceFile(raceFilePath)
		if err != nil {
			logrus.Fatalf("load race file: %v", err)
		}
		if rf.RaceID == "" {
			rf.RaceID = uuid.NewString()
		}

		entrants := make([]race.SegmentEntrant, len(rf.Entrants))
		sigs := make([]string, len(rf.Entrants))
		for i, s := range rf.Entrants {
			entrants[i] = race.SegmentEntrantFromSnapshot(s)
			sigs[i] = s.Signature
		}

		hash := engine.CommitSeed(serverSeed)
		combined := race.CombinedSeed(serverSeed, sigs)
		sim := race.SimulateSegmentRace(combined, entrants, entryFee)

		rec := openRecorder()
		defer rec.Close()
		err = rec.RecordSegmentRace(&recorder.SegmentRaceRecord{
			RaceID:        rf.RaceID,
			ServerSeed:    serverSeed,
			PublishedHash: hash,
			EntryFee:      entryFee,
			Entrants:      entrants,
			Simulation:    sim,
		})
		if err != nil {
			logrus.Errorf("record race: %v", err)
		}

		printJSON(map[string]any{
			"race_id":        rf.RaceID,
			"published_hash": hash,
			"simulation":     sim,
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay a published segment race from the disclosed server seed",
	Run: func(cmd *cobra.Command, args []string) {
		rf, err := loadRaceFile(raceFilePath)
		if err != nil {
			logrus.Fatalf("load race file: %v", err)
		}

		data, err := os.ReadFile(publishedResult)
		if err != nil {
			logrus.Fatalf("load published results: %v", err)
		}
		var published []race.SegmentResult
		if err := json.Unmarshal(data, &published); err != nil {
			logrus.Fatalf("parse published results: %v", err)
		}

		entrants := make([]race.SegmentEntrant, len(rf.Entrants))
		for i, s := range rf.Entrants {
			entrants[i] = race.SegmentEntrantFromSnapshot(s)
		}

		v := race.VerifySegmentRace(serverSeed, publishedHash, entrants, entryFee, published)
		printJSON(v)
		if !v.Valid {
			os.Exit(1)
		}
	},
}

func loadRaceFile(path string) (*raceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rf := &raceFile{}
	if err := yaml.Unmarshal(data, rf); err != nil {
		return nil, err
	}
	return rf, nil
}

func init() {
	scoreCmd.Flags().StringVar(&raceFilePath, "race", "race.yaml", "race fixture with frozen entrants")
	scoreCmd.Flags().StringVar(&seedMaterial, "seed", "", "public seed material (block hash)")
	scoreCmd.Flags().Int64Var(&blockHeight, "height", 0, "chain height for boost expiry")
	scoreCmd.MarkFlagRequired("seed")

	simulateCmd.Flags().StringVar(&raceFilePath, "race", "race.yaml", "race fixture with frozen entrants")
	simulateCmd.Flags().StringVar(&serverSeed, "server-seed", "", "house server seed")
	simulateCmd.Flags().Int64Var(&entryFee, "entry-fee", 100, "entry fee per entrant")
	simulateCmd.MarkFlagRequired("server-seed")

	verifyCmd.Flags().StringVar(&raceFilePath, "race", "race.yaml", "race fixture with frozen entrants")
	verifyCmd.Flags().StringVar(&serverSeed, "server-seed", "", "disclosed server seed")
	verifyCmd.Flags().StringVar(&publishedHash, "hash", "", "pre-race seed commitment")
	verifyCmd.Flags().StringVar(&publishedResult, "published", "results.json", "published results file")
	verifyCmd.Flags().Int64Var(&entryFee, "entry-fee", 100, "entry fee per entrant")
	verifyCmd.MarkFlagRequired("server-seed")
	verifyCmd.MarkFlagRequired("hash")
}
