package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paddocklabs/chainderby/internal/recorder"
)

var (
	configPath string
	dbPath     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "chainderby",
	Short: "Deterministic progression and race-resolution engine for creature racing",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "engine.yaml", "path to the engine config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite path for the race audit log (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity level")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(deriveCmd)
}

// openRecorder returns the configured audit recorder; without --db it is a
// noop.
func openRecorder() recorder.Recorder {
	if dbPath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(dbPath)
	if err != nil {
		logrus.Fatalf("open audit db: %v", err)
	}
	return r
}
