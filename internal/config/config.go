// Package config holds the engine's tunables as strongly-typed structures
// parsed once at load time. The engine packages consume these values whole
// per invocation; nothing here is cached behind the caller's back.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paddocklabs/chainderby/internal/stats"
)

// Config is the full engine configuration.
type Config struct {
	Activities        map[string]stats.Activity `yaml:"activities"`
	RaceTypeWeights   map[string]stats.Block    `yaml:"race_type_weights"`
	PrizeDistribution []float64                 `yaml:"prize_distribution"`
	EntryFee          float64                   `yaml:"entry_fee"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.PrizeDistribution) == 0 {
		c.PrizeDistribution = []float64{0.50, 0.30, 0.20}
	}
	if c.EntryFee == 0 {
		c.EntryFee = 100
	}
}

// Validate checks semantic constraints, accumulating every violation so a
// bad file is fixed in one pass.
func (c *Config) Validate() error {
	var errs []string

	for id, act := range c.Activities {
		if !stats.IsKnown(act.Primary) {
			errs = append(errs, fmt.Sprintf("activities.%s.primary: unknown stat %q", id, act.Primary))
		}
		if act.PrimaryGain <= 0 {
			errs = append(errs, fmt.Sprintf("activities.%s.primary_gain must be > 0", id))
		}
		if act.Secondary != "" && !stats.IsKnown(act.Secondary) {
			errs = append(errs, fmt.Sprintf("activities.%s.secondary: unknown stat %q", id, act.Secondary))
		}
		if act.SecondaryGain < 0 {
			errs = append(errs, fmt.Sprintf("activities.%s.secondary_gain must be >= 0", id))
		}
		if act.FatigueCost < 0 {
			errs = append(errs, fmt.Sprintf("activities.%s.fatigue_cost must be >= 0", id))
		}
	}

	for name, w := range c.RaceTypeWeights {
		for _, stat := range stats.Names {
			if w.Get(stat) < 0 {
				errs = append(errs, fmt.Sprintf("race_type_weights.%s.%s must be >= 0", name, stat))
			}
		}
	}

	sum := 0.0
	for i, p := range c.PrizeDistribution {
		if p <= 0 || p > 1 {
			errs = append(errs, fmt.Sprintf("prize_distribution[%d] must be in (0,1]", i))
		}
		sum += p
	}
	if sum > 1+1e-9 {
		errs = append(errs, "prize_distribution must not sum above 1")
	}

	if c.EntryFee < 0 {
		errs = append(errs, "entry_fee must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
