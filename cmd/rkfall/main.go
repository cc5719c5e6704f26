package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rkfall/rkfall/internal/config"
	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/integrators"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	ticks      uint32
	dt         float64
	exclusion  string
	integrator string
	owner      string
	plot       bool
	csvOut     string
	output     string
	noTraj     bool
	frameRate  int
	theme      string
	runs       int
	profileOut string
	svgSize    int

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rkfall",
		Short:         "deterministic fixed-point n-body simulator and minter",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rkfall", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation without minting",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot orbits and energy")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the trajectory to a CSV file")

	mintCmd := &cobra.Command{
		Use:   "mint [preset]",
		Short: "simulate and mint the outcome as a token",
		Args:  cobra.MaximumNArgs(1),
		RunE:  mintToken,
	}
	addSimFlags(mintCmd)
	mintCmd.Flags().StringVar(&owner, "owner", "", "receiving address")
	mintCmd.Flags().BoolVar(&noTraj, "no-trajectory", false, "do not store the per-tick trajectory")

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "advance a JSON system read from stdin and write it to stdout",
		Long: `tick reads {"mass":[],"x":[],"y":[],"vel_x":[],"vel_y":[],"ticks":n,"dt":d}
with fixed-point integers, advances it n ticks (1 if omitted) with step d
(0.001 if omitted) and writes the resulting arrays.`,
		Args: cobra.NoArgs,
		RunE: tickStdin,
	}
	tickCmd.Flags().StringVar(&exclusion, "exclusion", "id", "self-exclusion policy (id|mass)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list minted tokens",
		RunE:  listTokens,
	}

	showCmd := &cobra.Command{
		Use:   "show [token_id]",
		Short: "show a minted token",
		Args:  cobra.ExactArgs(1),
		RunE:  showToken,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [token_id]",
		Short: "plot a minted token's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotToken,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark tick throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 4, "concurrent independent runs")
	benchCmd.Flags().StringVar(&profileOut, "profile", "", "write a cpu or mem profile")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-14s %d bodies, %d ticks\n", p, len(cfg.Bodies), cfg.Ticks)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [token_id]",
		Short: "export a minted token to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [token_id]",
		Short: "export a minted token's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [token_id]",
		Short: "estimate orbital periods of a minted token",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeToken,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [token_id]",
		Short: "export a minted token's orbits to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image width and height")

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a preset as a YAML config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%s)\n", args[0], cfg.Name)
			return nil
		},
	}
	addSimFlags(initConfigCmd)

	rootCmd.AddCommand(runCmd, mintCmd, tickCmd, listCmd, showCmd, plotCmd, analyzeCmd, liveCmd, benchCmd, presetsCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = newLogger(false)
		}
		logger.Error(err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "rkfall",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Uint32Var(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (mint always uses 0.001)")
	cmd.Flags().StringVar(&exclusion, "exclusion", "id", "self-exclusion policy (id|mass)")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
}

// loadConfig resolves the preset named in args (or the default), then the
// config file, then any flags set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("exclusion") {
		cfg.Exclusion = exclusion
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f := cmd.Flags().Lookup("owner"); f != nil && f.Changed {
		cfg.Owner = owner
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func exclusionFlag() (dynamo.Exclusion, error) {
	return dynamo.ParseExclusion(exclusion)
}
