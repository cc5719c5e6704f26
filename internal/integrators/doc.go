// Package integrators provides single-body fixed-point steppers.
//
// [RK4] defines minted outcomes. [Euler] and [Verlet] exist for comparing
// drift and are selected by name through [Get].
package integrators
