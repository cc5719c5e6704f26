package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/metrics"
	"github.com/rkfall/rkfall/internal/sim"
	"github.com/rkfall/rkfall/internal/storage"
	"github.com/rkfall/rkfall/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := cfg.Simulator()
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	sys, err := cfg.System()
	if err != nil {
		return err
	}
	simCfg := cfg.SimConfig()
	simCfg.Record = plot || csvOut != ""

	fmt.Printf("running %s: %d bodies, %d ticks\n", cfg.Name, len(sys), cfg.Ticks)
	logger.Debug("config", "dt", simCfg.Dt, "exclusion", cfg.Exclusion, "limits", cfg.Limits)
	start := time.Now()

	result, err := s.Run(context.Background(), sys, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n\n", elapsed)
	fmt.Println(viz.SystemTable(result.Final))

	printMetrics(result.Metrics)

	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.WriteCSV(f, result.Trajectory); err != nil {
			return err
		}
		fmt.Printf("\ntrajectory written to %s\n", csvOut)
	}

	if plot {
		printPlots(result.Trajectory)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func printPlots(trajectory []dynamo.System) {
	fmt.Println()
	fmt.Println(viz.Orbit(trajectory, 60, 20))
	if chart := viz.EnergyPlot(trajectory); chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}
	for _, chart := range viz.AxisPlots(trajectory) {
		fmt.Println(chart)
		fmt.Println()
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := cfg.Simulator()
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}

	limit := uint32(0)
	if cmd.Flags().Changed("ticks") {
		limit = cfg.Ticks
	}

	m := viz.NewModel(s, sys, cfg.FixedDt(), limit).WithFPS(frameRate).WithTheme(theme)

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if lm, ok := final.(viz.Model); ok && lm.Err() != nil {
		return fmt.Errorf("stopped at tick %d: %w", lm.Ticks(), lm.Err())
	}
	return nil
}

func benchPreset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := cfg.Simulator()
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	switch profileOut {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile: %s (cpu|mem)", profileOut)
	}

	reqs := make([]sim.Request, runs)
	for i := range reqs {
		reqs[i] = sim.Request{System: sys, Config: cfg.SimConfig()}
	}

	fmt.Printf("benchmarking %s: %d bodies, %d ticks, %d runs\n\n", cfg.Name, len(sys), cfg.Ticks, runs)

	start := time.Now()
	results, err := sim.NewEnsemble(s).Run(context.Background(), reqs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i := 1; i < len(results); i++ {
		if !results[i].Final.Equal(results[0].Final) {
			return fmt.Errorf("run %d diverged from run 0", i)
		}
	}

	total := float64(cfg.Ticks) * float64(runs)
	pairs := total * float64(len(sys)*len(sys))
	fmt.Println(viz.Metric("Elapsed", elapsed.String()))
	fmt.Println(viz.Metric("Ticks/sec", fmt.Sprintf("%.0f", total/elapsed.Seconds())))
	fmt.Println(viz.Metric("Pairs/sec", fmt.Sprintf("%.0f", pairs/elapsed.Seconds())))
	fmt.Println(viz.Metric("Identical", "yes"))
	return nil
}
