package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rkfall/rkfall/internal/sim"
	"github.com/rkfall/rkfall/internal/token"
)

type tickRequest struct {
	token.Request
	Dt int64 `json:"dt,omitempty"`
}

func tickStdin(cmd *cobra.Command, args []string) error {
	var req tickRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("decode stdin: %w", err)
	}
	if req.Dt == 0 {
		req.Dt = sim.DefaultDt
	}
	n := req.Ticks
	if n == 0 {
		n = 1
	}

	ex, err := exclusionFlag()
	if err != nil {
		return err
	}
	sys, err := req.System()
	if err != nil {
		return err
	}

	s := sim.NewGravity(ex)
	s.SetLimits(sim.DefaultLimits())

	next, err := s.TickMany(n, req.Dt, sys)
	if err != nil {
		return err
	}
	logger.Debug("ticked", "bodies", len(sys), "ticks", n, "dt", req.Dt)

	out := tickRequest{Request: token.RequestFromSystem(next, n), Dt: req.Dt}
	return json.NewEncoder(os.Stdout).Encode(out)
}
