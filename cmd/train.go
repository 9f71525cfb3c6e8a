package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paddocklabs/chainderby/internal/config"
	"github.com/paddocklabs/chainderby/internal/eligibility"
	"github.com/paddocklabs/chainderby/internal/stats"
	"github.com/paddocklabs/chainderby/internal/traits"
)

var (
	trainActivity  string
	trainStateFile string
	useRateScaled  bool

	deriveCollection string
	deriveToken      string
)

// creatureState is the training-preview fixture: the creature's current
// progression state as the persistence layer would supply it.
type creatureState struct {
	Trained       stats.Block `yaml:"trained"`
	Fatigue       float64     `yaml:"fatigue"`
	Sharpness     float64     `yaml:"sharpness"`
	LastActionAt  *time.Time  `yaml:"last_action_at"`
	BonusActions  int         `yaml:"bonus_actions"`
	RegularToday  int         `yaml:"regular_today"`
	LastRegularAt *time.Time  `yaml:"last_regular_at"`
	SeasonStatus  string      `yaml:"season_status"`
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Preview a training action: eligibility, decayed condition, and stat gains",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			logrus.Fatalf("load config: %v", err)
		}

		state, err := loadCreatureState(trainStateFile)
		if err != nil {
			logrus.Fatalf("load creature state: %v", err)
		}

		now := time.Now().UTC()
		decision := eligibility.Check(
			eligibility.SeasonStatus(state.SeasonStatus),
			state.BonusActions, state.RegularToday, state.LastRegularAt, now,
		)
		if !decision.Allowed {
			printJSON(decision)
			return
		}

		formula := stats.DecayFlat
		if useRateScaled {
			formula = stats.DecayRateScaled
		}
		fatigue, sharpness := stats.Decay(state.Fatigue, state.Sharpness, state.LastActionAt, now, formula)

		gains, err := stats.ComputeGains(trainActivity, state.Trained, cfg.Activities)
		if err != nil {
			logrus.Fatalf("compute gains: %v", err)
		}

		printJSON(map[string]any{
			"decision":          decision,
			"decayed_fatigue":   fatigue,
			"decayed_sharpness": sharpness,
			"gains":             gains,
		})
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive base stats from a token metadata collection",
	Run: func(cmd *cobra.Command, args []string) {
		src := traits.NewSource()
		if err := src.LoadFile(deriveCollection); err != nil {
			logrus.Fatalf("load collection: %v", err)
		}

		if deriveToken != "" {
			b := src.BaseStats(deriveToken)
			if b == nil {
				logrus.Fatalf("token %s has no derivable base stats", deriveToken)
			}
			printJSON(b)
			return
		}

		all := src.DeriveAll()
		logrus.Infof("derived base stats for %d tokens", len(all))
		printJSON(all)
	},
}

func loadCreatureState(path string) (*creatureState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	state := &creatureState{}
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(out))
}

func init() {
	trainCmd.Flags().StringVar(&trainActivity, "activity", "", "activity id from the config")
	trainCmd.Flags().StringVar(&trainStateFile, "state", "creature.yaml", "creature state fixture")
	trainCmd.Flags().BoolVar(&useRateScaled, "rate-scaled-decay", false, "use the rate-scaled fatigue decay variant")
	trainCmd.MarkFlagRequired("activity")

	deriveCmd.Flags().StringVar(&deriveCollection, "collection", "collection.json", "token metadata file")
	deriveCmd.Flags().StringVar(&deriveToken, "token", "", "derive a single token id")
}
