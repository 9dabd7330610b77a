// Package snapshot stores dated program snapshots as CSV files.
//
// The layout is one directory per source under the data directory and
// one file per calendar day named YYYYMMDD.csv, written whole with a
// fixed column order. A day's snapshot is immutable input for later
// diffs; rewriting the same day replaces the file. Loading distinguishes
// a missing snapshot (ErrNoSnapshot) from an empty one, and rejects
// files whose header lost an identity column (ErrSchema).
package snapshot
