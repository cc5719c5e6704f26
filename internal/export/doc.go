// Package export renders trajectories to SVG.
package export
