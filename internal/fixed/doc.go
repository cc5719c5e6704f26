// Package fixed provides the scaled-integer arithmetic used by the
// simulator.
//
// A value v stands for the real number v/[Precision]. The package offers:
//
//   - [Sqrt]: Heron's integer square root
//   - [GravitationalAcceleration]: one-axis pairwise acceleration
//   - [Arith]: checked add, subtract, multiply and divide
//
// # Overflow
//
// Results that do not fit in 64 bits are reported as [ErrOverflow] rather
// than wrapping. The acceleration formula carries its intermediates at 256
// bits so that its result equals the exact truncating evaluation.
package fixed
