// Package analysis estimates orbital periods from recorded trajectories
// with a power spectrum.
package analysis
