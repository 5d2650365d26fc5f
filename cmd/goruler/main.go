package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/goruler/internal/config"
	"github.com/philipparndt/goruler/internal/logging"
	"github.com/philipparndt/goruler/version"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goruler",
	Short: "Measure distances between points in a scanned scene",
	Long: `goruler places two markers on detected feature points of a scanned scene
and shows the straight-line distance between them in centimeters.
A third point starts a new measurement.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./goruler.yaml or $HOME/.config/goruler/goruler.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", zap.Any("config", cfg))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
