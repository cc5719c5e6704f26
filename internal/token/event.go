package token

import (
	"time"

	"github.com/rkfall/rkfall/internal/dynamo"
)

// MintEvent is the auditable record of one mint: the identifier, the owner
// and the full initial and final per-axis arrays in input order.
type MintEvent struct {
	TokenID   ID        `json:"token_id"`
	Owner     string    `json:"owner"`
	Ticks     uint32    `json:"ticks"`
	Dt        int64     `json:"dt"`
	Timestamp time.Time `json:"timestamp"`

	Mass      []uint64 `json:"mass"`
	InitX     []int64  `json:"init_x"`
	InitY     []int64  `json:"init_y"`
	InitVelX  []int64  `json:"init_vel_x"`
	InitVelY  []int64  `json:"init_vel_y"`
	FinalX    []int64  `json:"final_x"`
	FinalY    []int64  `json:"final_y"`
	FinalVelX []int64  `json:"final_vel_x"`
	FinalVelY []int64  `json:"final_vel_y"`
}

func NewMintEvent(id ID, owner string, ticks uint32, dt int64, initial, final dynamo.System) *MintEvent {
	return &MintEvent{
		TokenID:   id,
		Owner:     owner,
		Ticks:     ticks,
		Dt:        dt,
		Mass:      initial.Masses(),
		InitX:     initial.Xs(),
		InitY:     initial.Ys(),
		InitVelX:  initial.VelXs(),
		InitVelY:  initial.VelYs(),
		FinalX:    final.Xs(),
		FinalY:    final.Ys(),
		FinalVelX: final.VelXs(),
		FinalVelY: final.VelYs(),
	}
}

func (e *MintEvent) Initial() (dynamo.System, error) {
	return dynamo.NewSystem(e.Mass, e.InitX, e.InitY, e.InitVelX, e.InitVelY)
}

func (e *MintEvent) Final() (dynamo.System, error) {
	return dynamo.NewSystem(e.Mass, e.FinalX, e.FinalY, e.FinalVelX, e.FinalVelY)
}
