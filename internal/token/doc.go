// Package token mints simulation outcomes as non-fungible tokens.
//
// A mint request carries per-body initial conditions and a tick count. The
// token identifier is the Keccak-256 hash of the request's ABI encoding, so
// the same initial conditions always name the same token and can be minted
// once. Minting runs the simulation to completion and emits a MintEvent with
// the initial and final states.
package token
