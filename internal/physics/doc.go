// Package physics provides the rate functions of the simulator.
//
// [Gravity] implements [dynamo.Deriver] for point masses in the plane with
// G = 1. Each call is O(n) in the number of bodies, so a whole tick is
// O(n²).
//
//	g := physics.NewGravity(dynamo.ByID)
//	d, err := g.Derive(sys[0], sys)
package physics
