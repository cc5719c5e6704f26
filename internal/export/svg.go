package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
	"github.com/rkfall/rkfall/internal/viz"
)

var palette = []string{"#ff00ff", "#00ffff", "#ffff00", "#00ff88", "#ff8800", "#8888ff"}

// OrbitSVG draws one path per body through the trajectory, with a dot at
// each body's final position.
func OrbitSVG(w io.Writer, trajectory []dynamo.System, width, height int) error {
	if len(trajectory) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	v := viz.Fit(trajectory...)
	rangeX, rangeY := v.MaxX-v.MinX, v.MaxY-v.MinY
	project := func(b dynamo.Body) (float64, float64) {
		x := (fixed.ToFloat(b.X) - v.MinX) / rangeX * float64(width)
		y := float64(height) - (fixed.ToFloat(b.Y)-v.MinY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i := range trajectory[0] {
		color := palette[i%len(palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for t, sys := range trajectory {
			x, y := project(sys[i])
			if t == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(trajectory[len(trajectory)-1][i])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x, y, color)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
