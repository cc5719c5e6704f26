// Package dynamo provides the core value types of the fixed-point N-body
// simulator.
//
//   - [Body]: one point mass with 2-D position and velocity
//   - [System]: the ordered bodies at one simulation instant
//   - [Deriver]: rate-of-change function for a body within a system
//   - [Stepper]: single-body integrator
//   - [Observer] and [Metric]: per-tick hooks used by the driver
//
// All quantities are scaled integers (see package fixed). Values are never
// mutated in place: every transform returns a new [Body] or [System].
//
// # Identity
//
// Self-interaction is excluded according to an [Exclusion] policy. [ByID]
// compares the explicit body identifier; [ByMass] reproduces the historical
// scheme in which equal masses mean the same body.
package dynamo
