// Package storage persists mint records on disk.
//
// Each token gets a directory named by its hex id holding record.json and,
// when the trajectory was kept, states.csv with one row per body per tick.
package storage
