package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rkfall/rkfall/internal/analysis"
	"github.com/rkfall/rkfall/internal/export"
	"github.com/rkfall/rkfall/internal/fixed"
	"github.com/rkfall/rkfall/internal/viz"
)

func analyzeToken(cmd *cobra.Command, args []string) error {
	st, ev, err := loadEvent(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(ev.TokenID)
	if err != nil {
		return err
	}
	if len(trajectory) < 2 {
		return fmt.Errorf("no trajectory stored for %s", ev.TokenID)
	}

	dt := fixed.ToFloat(ev.Dt)
	fmt.Printf("frequency analysis: %s\n", ev.TokenID)
	fmt.Printf("samples: %d, dt: %g\n\n", len(trajectory), dt)

	for i, period := range analysis.BodyPeriods(trajectory, dt) {
		value := "no full cycle"
		if period > 0 {
			value = fmt.Sprintf("%.3f (%d ticks)", period, int(period/dt+0.5))
		}
		fmt.Println(viz.Metric(fmt.Sprintf("Body %d", trajectory[0][i].ID), value))
	}

	if len(trajectory[0]) >= 2 {
		sep := analysis.Separation(trajectory, 0, 1)
		ps := analysis.PowerSpectrum(sep)
		fmt.Println()
		fmt.Println(asciigraph.Plot(viz.Downsample(ps[:max(len(ps)/4, 1)], 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (separation of bodies 0 and 1)"),
		))
		fmt.Println(viz.Metric("Sep. period", fmt.Sprintf("%.3f", analysis.DominantPeriod(sep, dt))))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, ev, err := loadEvent(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(ev.TokenID)
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("no trajectory stored for %s", ev.TokenID)
	}

	w, err := outputWriter()
	if err != nil {
		return err
	}
	defer w.Close()
	return export.OrbitSVG(w, trajectory, svgSize, svgSize)
}
