package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/integrators"
	"github.com/rkfall/rkfall/internal/sim"
	"github.com/rkfall/rkfall/internal/storage"
	"github.com/rkfall/rkfall/internal/token"
	"github.com/rkfall/rkfall/internal/viz"
)

func openStore() (*storage.Store, *token.Ledger, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, nil, err
	}
	ledger := token.NewLedger()
	if err := st.Restore(ledger); err != nil {
		return nil, nil, fmt.Errorf("restore ledger: %w", err)
	}
	logger.Debug("ledger restored", "dir", dataDir, "tokens", ledger.Len())
	return st, ledger, nil
}

func mintToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Owner == "" {
		return fmt.Errorf("%w: set --owner or owner in the config file", token.ErrInvalidReceiver)
	}
	if cfg.Integrator != "" && cfg.Integrator != integrators.Default {
		return fmt.Errorf("tokens are only minted with %s, not %s", integrators.Default, cfg.Integrator)
	}
	if cmd.Flags().Changed("dt") {
		logger.Warn("mint ignores --dt", "dt", sim.DefaultDt)
	}

	s, err := cfg.Simulator()
	if err != nil {
		return err
	}
	req, err := cfg.Request()
	if err != nil {
		return err
	}

	st, ledger, err := openStore()
	if err != nil {
		return err
	}

	opts := []token.Option{token.WithRecorder(st), token.WithLogger(logger)}
	if !noTraj {
		opts = append(opts, token.WithTrajectory())
	}
	minter := token.NewMinter(ledger, s, opts...)

	fmt.Printf("minting %s: %d bodies, %d ticks\n", cfg.Name, len(req.Mass), req.Ticks)
	start := time.Now()

	ev, err := minter.Mint(context.Background(), cfg.Owner, req)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("token id: %s\n", ev.TokenID)
	fmt.Printf("decimal:  %s\n", ev.TokenID.Decimal())
	fmt.Printf("owner:    %s (balance %d)\n", ev.Owner, ledger.BalanceOf(ev.Owner))
	return nil
}

func listTokens(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	events, err := st.List()
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("no tokens found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tOWNER\tBODIES\tTICKS\tTIME")

	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			ev.TokenID,
			ev.Owner,
			len(ev.Mass),
			ev.Ticks,
			ev.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func loadEvent(arg string) (*storage.Store, *token.MintEvent, error) {
	id, err := token.ParseID(arg)
	if err != nil {
		return nil, nil, err
	}
	st := storage.New(dataDir)
	ev, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	return st, ev, nil
}

func showToken(cmd *cobra.Command, args []string) error {
	_, ev, err := loadEvent(args[0])
	if err != nil {
		return err
	}
	initial, err := ev.Initial()
	if err != nil {
		return err
	}
	final, err := ev.Final()
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("token " + ev.TokenID.String()))
	fmt.Println(viz.Metric("Decimal", ev.TokenID.Decimal()))
	fmt.Println(viz.Metric("Owner", ev.Owner))
	fmt.Println(viz.Metric("Ticks", fmt.Sprintf("%d", ev.Ticks)))
	fmt.Println(viz.Metric("Dt", fmt.Sprintf("%d", ev.Dt)))
	fmt.Println(viz.Metric("Minted", ev.Timestamp.Format(time.RFC3339)))
	fmt.Println()
	fmt.Println("initial:")
	fmt.Println(viz.SystemTable(initial))
	fmt.Println("final:")
	fmt.Println(viz.SystemTable(final))
	return nil
}

func plotToken(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("token: %s\n", ev.TokenID)
	fmt.Printf("samples: %d\n", len(trajectory))
	printPlots(trajectory)
	return nil
}

func outputWriter() (io.WriteCloser, error) {
	if output == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	st, ev, err := loadEvent(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(ev.TokenID)
	if err != nil {
		return err
	}

	w, err := outputWriter()
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportJSON(w, ev, trajectory)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, ev, err := loadEvent(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(ev.TokenID)
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		initial, err := ev.Initial()
		if err != nil {
			return err
		}
		final, err := ev.Final()
		if err != nil {
			return err
		}
		trajectory = []dynamo.System{initial, final}
	}

	w, err := outputWriter()
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.WriteCSV(w, trajectory)
}
