package main

import (
	"fmt"

	"mode-allocation-simulator/internal/config"
	"mode-allocation-simulator/internal/platform/obs"

	"github.com/spf13/cobra"
)

// globalFlags override the environment configuration for one invocation.
type globalFlags struct {
	costsPath   string
	strictLanes bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "simulator",
		Short: "Compare realized transport modes with the cheaper mode per lane",
		Long: `simulator joins historical shipments to reference lane costs, flags
shipments served by the more expensive of fleet and aggregated capacity, and
totals the saving potential by month and mode.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.costsPath, "costs", "", "reference cost CSV (overrides COST_FILE and forces COST_SOURCE=csv)")
	root.PersistentFlags().BoolVar(&flags.strictLanes, "strict-lanes", false, "fail when the cost reference defines a lane twice")

	root.AddCommand(newAnalyzeCmd(&flags), newLanesCmd(&flags))
	return root
}

// loadConfig reads the environment configuration, applies flag overrides and
// installs the logger. The CLI logs warnings and above unless LOG_LEVEL is set.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.costsPath != "" {
		cfg.CostSource = config.CostSourceCSV
		cfg.CostFile = flags.costsPath
	}
	if flags.strictLanes {
		cfg.StrictLanes = true
	}

	level := cfg.LogLevel
	if config.Get("LOG_LEVEL", "") == "" {
		level = "warn"
	}
	if _, err := obs.InitLogger(level); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, nil
}
