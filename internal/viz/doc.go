// Package viz renders n-body systems in the terminal.
//
// Static output is a braille [Canvas] of body paths plus asciigraph charts of
// energy and coordinates. [Model] is a Bubble Tea program that advances a
// system one tick at a time and redraws it:
//
//	Space - Pause/Resume
//	R     - Reset to the initial system
//	+/-   - Ticks per frame
//	F     - Refit the view
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
