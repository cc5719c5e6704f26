package storage

import (
	"encoding/json"
	"io"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/token"
)

type ExportData struct {
	*token.MintEvent
	Steps      int             `json:"steps"`
	Trajectory []dynamo.System `json:"trajectory,omitempty"`
}

// ExportJSON writes the event and its trajectory as one indented document.
func ExportJSON(w io.Writer, ev *token.MintEvent, trajectory []dynamo.System) error {
	data := ExportData{
		MintEvent:  ev,
		Steps:      len(trajectory),
		Trajectory: trajectory,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
